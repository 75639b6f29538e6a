package repository

const (
	ACCOUNT_COLLECTION     = "accounts"
	MESSAGE_COLLECTION     = "messages"
	KEYWORD_COLLECTION     = "keywords"
	SUB_ACCOUNT_COLLECTION = "sub_accounts"
)
