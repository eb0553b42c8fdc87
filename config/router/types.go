package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// Attachment is a file response, written raw instead of wrapped in the JSON envelope.
type Attachment struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ServiceResult struct {
	StatusCode int
	Data       any
	Message    string
	Attachment *Attachment
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

// ToJSON renders the public envelope: {success:true, message, data?} for 2xx results and
// {success:false, error, details?} otherwise.
func (result *ServiceResult) ToJSON() gin.H {
	if result.IsSuccess() {
		body := gin.H{
			"success": true,
			"message": result.Message,
		}
		if result.Data != nil {
			body["data"] = result.Data
		}
		return body
	}

	body := gin.H{
		"success": false,
		"error":   result.Message,
	}
	if result.Data != nil {
		body["details"] = result.Data
	}
	return body
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
