package devtools

import (
	"fmt"

	"github.com/Aidin1998/apihub/common/errors"
)

var statusExplanations = map[int]string{
	100: "Continue - The client should continue the request or ignore the response if the request is already finished.",
	101: "Switching Protocols - The server is switching protocols as requested by the client.",
	200: "OK - The request has succeeded.",
	201: "Created - The request has been fulfilled and resulted in a new resource being created.",
	202: "Accepted - The request has been received but not yet acted upon.",
	204: "No Content - The server successfully processed the request and is not returning any content.",
	206: "Partial Content - The server is delivering only part of the resource due to a range header.",
	301: "Moved Permanently - The URL of the requested resource has been changed permanently.",
	302: "Found - The URI of the requested resource has been changed temporarily.",
	304: "Not Modified - The response has not been modified, so the client can use its cached version.",
	307: "Temporary Redirect - The resource is temporarily at another URI and the method must not change.",
	308: "Permanent Redirect - The resource is permanently at another URI and the method must not change.",
	400: "Bad Request - The server cannot or will not process the request due to something that is perceived to be a client error.",
	401: "Unauthorized - The client must authenticate itself to get the requested response.",
	403: "Forbidden - The client does not have access rights to the content.",
	404: "Not Found - The server can not find the requested resource.",
	405: "Method Not Allowed - The request method is known by the server but is not supported by the target resource.",
	408: "Request Timeout - The server would like to shut down this unused connection.",
	409: "Conflict - The request conflicts with the current state of the server.",
	410: "Gone - The requested content has been permanently deleted from the server.",
	413: "Content Too Large - The request entity is larger than limits defined by the server.",
	415: "Unsupported Media Type - The media format of the requested data is not supported by the server.",
	418: "I'm a teapot - The server refuses the attempt to brew coffee with a teapot.",
	422: "Unprocessable Content - The request was well-formed but could not be followed due to semantic errors.",
	429: "Too Many Requests - The user has sent too many requests in a given amount of time.",
	500: "Internal Server Error - The server has encountered a situation it doesn't know how to handle.",
	501: "Not Implemented - The request method is not supported by the server and cannot be handled.",
	502: "Bad Gateway - The server, while working as a gateway, got an invalid response.",
	503: "Service Unavailable - The server is not ready to handle the request.",
	504: "Gateway Timeout - The server, acting as a gateway, did not get a response in time.",
}

type StatusExplanation struct {
	Code        int    `json:"code"`
	Explanation string `json:"explanation"`
	ImageURL    string `json:"image_url"`
}

// ExplainStatus describes a well-known HTTP status code.
func ExplainStatus(code int) (StatusExplanation, error) {
	explanation, ok := statusExplanations[code]
	if !ok {
		return StatusExplanation{}, errors.NotFound.Explain(
			"Explanation for HTTP status code %d not found.", code)
	}
	return StatusExplanation{
		Code:        code,
		Explanation: explanation,
		ImageURL:    fmt.Sprintf("https://http.cat/%d.jpg", code),
	}, nil
}
