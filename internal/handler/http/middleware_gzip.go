package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// compressionLevel is used by chi's Compress middleware for responses.
const compressionLevel = 5

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZipRequest transparently inflates request bodies sent with
// "Content-Encoding: gzip". Response compression is left to chi.
func withGZipRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzipReaderPool.Get().(*gzip.Reader)
		if err := gz.Reset(r.Body); err != nil {
			gzipReaderPool.Put(gz)
			http.Error(w, "Invalid gzip data", http.StatusBadRequest)
			return
		}

		r.Body = &pooledGZipBody{Reader: gz, body: r.Body}
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}

type pooledGZipBody struct {
	*gzip.Reader
	body   io.ReadCloser
	closed bool
}

func (b *pooledGZipBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.Reader.Close()
	gzipReaderPool.Put(b.Reader)
	if cerr := b.body.Close(); err == nil {
		err = cerr
	}
	return err
}
