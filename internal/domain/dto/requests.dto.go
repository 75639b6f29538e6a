package dto

// Raw form values as received by the sandbox. Validation happens in the service.

type SendSMSRequest struct {
	Body           string
	Originator     string
	Numbers        string
	OriginatorType string
	TimeToLive     string
	Encoding       string
}

type CreateKeywordRequest struct {
	Shortcode string
	Keyword   string
	IsSticky  string
	MoURL     string
}

type OperatorLookupRequest struct {
	Number string
}

type CreateSubAccountRequest struct {
	Name string
}
