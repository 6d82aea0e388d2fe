// Package assets loads image bytes from the references a job can carry:
// data URIs, http(s) URLs and bare base64 payloads.
package assets

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"strings"

	"juriscontent-workers/internal/common/errors"
	"juriscontent-workers/internal/common/http"
)

const DefaultMaxBytes = 15 << 20

// DefaultLogoMIME is assumed for logo payloads sent without a data: prefix.
const DefaultLogoMIME = "image/png"

var ErrEmptyReference = stderrors.New("empty asset reference")

type Fetcher struct {
	client   *http.Client
	maxBytes int
}

func NewFetcher(client *http.Client, maxBytes int) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// Fetch resolves ref to raw image bytes.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, ErrEmptyReference
	case strings.HasPrefix(ref, "data:"):
		_, data, err := ParseDataURI(ref)
		return f.limit(ref, data, err)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err := f.client.GetLimited(ctx, ref, int64(f.maxBytes))
		if err != nil {
			if stderrors.Is(err, http.ErrBodyTooLarge) {
				return nil, errors.NewInvalidInputError(fmt.Sprintf("asset %s is larger than %d bytes", shortRef(ref), f.maxBytes))
			}
			var upErr *errors.UpstreamError
			if stderrors.As(err, &upErr) && upErr.Status != 0 {
				return nil, err
			}
			if stdErr := errors.AsStandardError(err); stdErr.Code == errors.ErrCodeUpstreamTimeout {
				return nil, stdErr
			}
			return nil, errors.NewAssetFetchFailedError(ref, err)
		}
		return f.limit(ref, data, nil)
	default:
		data, err := decodeBase64(ref)
		if err != nil {
			return nil, &errors.AssetDecodeError{Asset: "base64 payload", Err: err}
		}
		return f.limit(ref, data, nil)
	}
}

func (f *Fetcher) limit(ref string, data []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if len(data) > f.maxBytes {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("asset %s is %d bytes, limit is %d", shortRef(ref), len(data), f.maxBytes))
	}
	return data, nil
}

// ParseDataURI splits a base64 data URI into its media type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, &errors.AssetDecodeError{Asset: "data uri", Err: stderrors.New("missing data: prefix")}
	}

	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return "", nil, &errors.AssetDecodeError{Asset: "data uri", Err: stderrors.New("missing payload separator")}
	}

	meta := uri[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, &errors.AssetDecodeError{Asset: "data uri", Err: stderrors.New("only base64 data uris are supported")}
	}

	data, err := decodeBase64(uri[comma+1:])
	if err != nil {
		return "", nil, &errors.AssetDecodeError{Asset: "data uri", Err: err}
	}
	return strings.TrimSuffix(meta, ";base64"), data, nil
}

// NormalizeLogo prefixes a bare base64 logo with the default PNG media
// type. Data URIs and URLs are returned unchanged.
func NormalizeLogo(logo string) string {
	logo = strings.TrimSpace(logo)
	if logo == "" || strings.HasPrefix(logo, "data:") ||
		strings.HasPrefix(logo, "http://") || strings.HasPrefix(logo, "https://") {
		return logo
	}
	return "data:" + DefaultLogoMIME + ";base64," + logo
}

// StripDataPrefix returns the base64 payload after the first comma.
func StripDataPrefix(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

// EncodeDataURI builds a base64 data URI for data.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)

	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	// some producers drop the padding
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func shortRef(ref string) string {
	if i := strings.IndexByte(ref, ','); strings.HasPrefix(ref, "data:") && i > 0 {
		return ref[:i]
	}
	if len(ref) > 80 {
		return ref[:80] + "..."
	}
	return ref
}
