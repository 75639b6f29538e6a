package entities

import "time"

type SentMessage struct {
	TxGUID         string    `json:"txguid"`
	Originator     string    `json:"originator"`
	OriginatorType string    `json:"originator_type"`
	Body           string    `json:"body"`
	Numbers        []string  `json:"numbers"`
	Encoding       string    `json:"encoding"`
	SmsParts       int       `json:"smsparts"`
	TimeToLive     *int      `json:"time_to_live,omitempty"`
	CostInPence    float64   `json:"cost_in_pence"`
	CreatedAt      time.Time `json:"created_at"`
}

type Keyword struct {
	Shortcode string    `json:"shortcode"`
	Keyword   string    `json:"keyword"`
	IsSticky  bool      `json:"is_sticky"`
	MoURL     string    `json:"mo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SubAccount struct {
	Name      string    `json:"name"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}
