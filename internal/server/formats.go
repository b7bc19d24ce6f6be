package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const plainSizeFormat = "%dx%d"

var csvHeader = []string{"model", "width", "height", "batch_size"}

// sizeResponse is the wire shape of a resolved size. The latent samples are never sent.
type sizeResponse struct {
	XMLName     xml.Name `json:"-" xml:"size"`
	Model       string   `json:"model" xml:"model,attr"`
	Width       int      `json:"width" xml:"width"`
	Height      int      `json:"height" xml:"height"`
	BatchSize   int      `json:"batch_size" xml:"batch_size"`
	LatentShape []int    `json:"latent_shape" xml:"latent_shape>dim"`
}

// preferredMime determines the response MIME type using the format query parameter or the Accept header.
func preferredMime(ginContext *gin.Context) string {
	if explicitFormat := ginContext.Query(QueryParameterFormat); explicitFormat != "" {
		return strings.ToLower(strings.TrimSpace(explicitFormat))
	}
	return strings.ToLower(strings.TrimSpace(ginContext.GetHeader(headerAccept)))
}

// formatResponse renders a resolved size into the requested MIME type and returns the body and content type.
func formatResponse(payload sizeResponse, preferred string) (string, string, error) {
	switch {
	case strings.Contains(preferred, "json"):
		encoded, encodeError := json.Marshal(payload)
		if encodeError != nil {
			return "", "", encodeError
		}
		return string(encoded), mimeApplicationJSON, nil
	case strings.Contains(preferred, "xml"):
		encoded, encodeError := xml.Marshal(payload)
		if encodeError != nil {
			return "", "", encodeError
		}
		return string(encoded), mimeApplicationXML, nil
	case strings.Contains(preferred, "csv"):
		var buffer bytes.Buffer
		csvWriter := csv.NewWriter(&buffer)
		_ = csvWriter.Write(csvHeader)
		_ = csvWriter.Write([]string{
			payload.Model,
			strconv.Itoa(payload.Width),
			strconv.Itoa(payload.Height),
			strconv.Itoa(payload.BatchSize),
		})
		csvWriter.Flush()
		if flushError := csvWriter.Error(); flushError != nil {
			return "", "", flushError
		}
		return buffer.String(), mimeTextCSV, nil
	default:
		return fmt.Sprintf(plainSizeFormat, payload.Width, payload.Height), mimeTextPlain, nil
	}
}
