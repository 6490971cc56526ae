package service

import "fmt"

// ErrorKind classifies analysis failures. Network and envelope kinds
// propagate to the caller with their message; only parser-level extraction
// failure is absorbed by the reference result (see parser.Parse).
type ErrorKind string

const (
	KindTimeout           ErrorKind = "timeout"
	KindTransport         ErrorKind = "transport"
	KindAuth              ErrorKind = "auth"
	KindEndpointNotFound  ErrorKind = "endpoint_not_found"
	KindRateLimited       ErrorKind = "rate_limited"
	KindServerError       ErrorKind = "server_error"
	KindUnclassifiedHTTP  ErrorKind = "unclassified_http"
	KindMalformedEnvelope ErrorKind = "malformed_envelope"
	KindUpstreamError     ErrorKind = "upstream_error"
	KindImageEncoding     ErrorKind = "image_encoding"
)

// kindMessages maps each kind to its fixed user-presentable message.
var kindMessages = map[ErrorKind]string{
	KindTimeout:           "请求超时，请检查网络连接",
	KindTransport:         "网络连接失败，请稍后再试",
	KindAuth:              "API密钥无效，请检查服务配置",
	KindEndpointNotFound:  "分析服务端点不存在",
	KindRateLimited:       "请求过于频繁，请稍后再试",
	KindServerError:       "服务器内部错误",
	KindUnclassifiedHTTP:  "API请求失败",
	KindMalformedEnvelope: "AI返回的数据格式不正确",
	KindUpstreamError:     "AI分析失败",
	KindImageEncoding:     "无法转换图片",
}

// AnalysisError is a typed pipeline failure with a user-presentable message.
type AnalysisError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int // upstream HTTP status, when one was received
}

func (e *AnalysisError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// UserMessage is the short message shown to the end user.
func (e *AnalysisError) UserMessage() string { return e.Message }

func newError(kind ErrorKind) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: kindMessages[kind]}
}

// classifyStatus maps a non-200 upstream status to its error kind.
func classifyStatus(status int) *AnalysisError {
	var kind ErrorKind
	switch {
	case status == 401:
		kind = KindAuth
	case status == 404:
		kind = KindEndpointNotFound
	case status == 429:
		kind = KindRateLimited
	case status >= 500:
		kind = KindServerError
	default:
		kind = KindUnclassifiedHTTP
	}
	err := newError(kind)
	err.StatusCode = status
	return err
}
