package models

import "encoding/base64"

// PageImage is one converted PDF page. Pages are 0-indexed and
// order-significant; the payload is kept in memory only for the duration of
// a single request.
type PageImage struct {
	Index  int
	Data   []byte
	Width  int
	Height int
	MIME   string
}

// DataURI renders the image as a base64 data URI suitable for a vision
// content part.
func (p PageImage) DataURI() string {
	return "data:" + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
