package main

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/temirov/latent-size/internal/apperrors"
	"github.com/temirov/latent-size/internal/resolution"
)

const (
	tableKeyModels = "models"

	logEventTableLoaded     = "resolution table loaded"
	logEventTableLoadFailed = "resolution table load failed"
	logFieldPath            = "path"
	logFieldModels          = "models"
	logFieldError           = "error"

	errorFormatTableRead = "%w: read %s: %v"
	errorFormatTableKey  = "%w: %s: %v"
	errorNoModels        = "no models defined"
)

// loadTable reads a resolution table file. The format follows the file extension.
//
//	models:
//	  - name: Qwen-Image
//	    arbitrary_dimensions: true
//	    resolutions: ["928x1664 (9:16 Vertical)", "1328x1328 (1:1 Square)"]
func loadTable(path string) (*resolution.Table, error) {
	tableReader := viper.New()
	tableReader.SetConfigFile(path)
	if readError := tableReader.ReadInConfig(); readError != nil {
		return nil, fmt.Errorf(errorFormatTableRead, apperrors.ErrInvalidTable, path, readError)
	}
	var entries []resolution.ModelEntry
	if decodeError := tableReader.UnmarshalKey(tableKeyModels, &entries); decodeError != nil {
		return nil, fmt.Errorf(errorFormatTableKey, apperrors.ErrInvalidTable, path, decodeError)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf(errorFormatTableKey, apperrors.ErrInvalidTable, path, errorNoModels)
	}
	return resolution.NewTable(entries...)
}
