package models

// HashResponse is returned by the fingerprint endpoint.
type HashResponse struct {
	Hash string `json:"hash"`
}

// VerifyResponse reports whether a content hash is registered.
type VerifyResponse struct {
	Hash       string `json:"hash"`
	Registered bool   `json:"registered"`
}

// DownloadRequest is the body of a retrieve-by-hash call.
type DownloadRequest struct {
	Password string `json:"password"`
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BuildInfoResponse exposes the build metadata of the running server.
type BuildInfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
