package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the current time in epoch milliseconds for
// response envelopes.
func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}

// NewOKResponse wraps data in a successful response envelope.
func NewOKResponse(data interface{}) ResponseModel {
	return ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}

// EntryData wraps a single-entity payload
type EntryData struct {
	Entry interface{} `json:"entry"`
}

// ListData wraps a list payload
type ListData struct {
	List interface{} `json:"list"`
}

// NewEntryResponse wraps a single entry in a successful response envelope.
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry})
}

// NewListResponse wraps a list in a successful response envelope.
func NewListResponse(list interface{}) ResponseModel {
	return NewOKResponse(ListData{List: list})
}
