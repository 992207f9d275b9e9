package exchange

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
	"github.com/uyouii/ocean-profiles/utils"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// Reader reads WHP exchange files, trying its encodings in order.
type Reader struct {
	encodings []string
}

func NewReader(encodings []string) (*Reader, error) {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	res := make([]string, 0, len(encodings))
	for _, enc := range encodings {
		enc = strings.ToLower(strings.TrimSpace(enc))
		switch enc {
		case EncodingUTF8, EncodingISO88591, EncodingWindows1252:
			res = append(res, enc)
		default:
			return nil, fmt.Errorf("encoding %q: %w", enc, common.ErrUnknownEncoding)
		}
	}
	return &Reader{encodings: res}, nil
}

func (r *Reader) Encodings() []string {
	return r.encodings
}

func (r *Reader) ReadFile(ctx context.Context, path string) (*model.Table, error) {
	logger := utils.GetLogger(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("could not read file", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	table, err := r.Read(ctx, data)
	if err != nil {
		logger.Error("could not parse file", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return table, nil
}

func (r *Reader) Read(ctx context.Context, data []byte) (*model.Table, error) {
	logger := utils.GetLogger(ctx)

	text, enc, err := r.Decode(data)
	if err != nil {
		return nil, err
	}
	if enc != r.encodings[0] {
		logger.Info("file decoded with fallback encoding", zap.String("encoding", enc))
	}
	return Parse(text)
}

// Decode returns the text of data under the first encoding that accepts it.
func (r *Reader) Decode(data []byte) (string, string, error) {
	for _, enc := range r.encodings {
		switch enc {
		case EncodingUTF8:
			if utf8.Valid(data) {
				return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), enc, nil
			}
		case EncodingISO88591:
			if text, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
				return string(text), enc, nil
			}
		case EncodingWindows1252:
			if text, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
				return string(text), enc, nil
			}
		}
	}
	return "", "", fmt.Errorf("tried %v: %w", r.encodings, common.ErrUnknownEncoding)
}
