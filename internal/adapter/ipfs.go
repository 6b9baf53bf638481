// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound adapters to external services.
//
// The package ships an IPFS implementation of [store.BlobStore] that talks
// to the Kubo HTTP RPC API. Remote failures are mapped by mapHTTPError onto
// the store sentinels ([store.ErrBlobNotFound],
// [store.ErrBlobStoreUnavailable]) so that the service layer stays
// backend-agnostic.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/go-resty/resty/v2"
)

const (
	ipfsAddPath = "/api/v0/add"
	ipfsCatPath = "/api/v0/cat"

	traceIDHeader = "X-Trace-ID"
)

type ipfsAddResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

type ipfsBlobStore struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewIPFSBlobStore constructs a [store.BlobStore] backed by an IPFS node.
// Locators are the CIDs returned by the node. Stored blobs are pinned.
//
// Returns an error if cfg.IPFSAddress is empty or cannot be parsed as a
// valid URL.
func NewIPFSBlobStore(cfg config.Blob, logger *logger.Logger) (store.BlobStore, error) {
	baseURL, err := normalizeBaseURL(cfg.IPFSAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid ipfs address: %w", err)
	}

	logger.Info().Str("address", baseURL).Msg("ipfs blob store created")

	return &ipfsBlobStore{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Store adds data to the node and returns its CID.
func (s *ipfsBlobStore) Store(ctx context.Context, data []byte) (string, error) {
	resp, err := s.request(ctx).
		SetQueryParam("pin", "true").
		SetFileReader("file", "blob", bytes.NewReader(data)).
		Post(ipfsAddPath)
	if err != nil {
		return "", fmt.Errorf("%w: add request: %w", store.ErrBlobStoreUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	cid, err := parseAddResponse(resp.Body())
	if err != nil {
		return "", fmt.Errorf("%w: %w", store.ErrBlobStoreUnavailable, err)
	}

	s.logger.Debug().Str("cid", cid).Int("size", len(data)).Msg("blob added to ipfs")
	return cid, nil
}

// Fetch returns the content addressed by locator.
func (s *ipfsBlobStore) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if strings.TrimSpace(locator) == "" {
		return nil, store.ErrBlobNotFound
	}

	resp, err := s.request(ctx).
		SetQueryParam("arg", locator).
		Post(ipfsCatPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cat request: %w", store.ErrBlobStoreUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (s *ipfsBlobStore) request(ctx context.Context) *resty.Request {
	req := s.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(traceIDHeader, traceID)
	}
	return req
}

// parseAddResponse reads the newline-delimited JSON objects of an add call
// and returns the hash of the last one, which is the root of the upload.
func parseAddResponse(body []byte) (string, error) {
	var cid string

	dec := json.NewDecoder(bytes.NewReader(body))
	for {
		var obj ipfsAddResponse
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		if obj.Hash != "" {
			cid = obj.Hash
		}
	}

	if cid == "" {
		return "", fmt.Errorf("%w: no hash in add response", ErrMalformedResponse)
	}
	return cid, nil
}
