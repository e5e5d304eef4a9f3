// Package http implements the REST transport of the accounts server.
//
// It decodes requests, stages multipart uploads, calls the service layer,
// and renders every outcome in the uniform JSON envelope. Session tokens
// travel both in the response body and as HttpOnly cookies. Trace ids,
// access logging, metrics and the auth guard are middleware.
package http
