package formatter

import (
	"encoding/json"

	"github.com/theoremus-urban-solutions/aseag-nextbus/siri"
)

// ResponseBuilder serializes SIRI responses.
type ResponseBuilder struct{}

// NewResponseBuilder creates a new response builder for formatting SIRI responses
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// BuildJSON serializes a SIRI response to JSON
func (rb *ResponseBuilder) BuildJSON(res *siri.SiriResponse) []byte {
	b, _ := json.Marshal(res)
	return b
}
