package packets

type TokenResponse struct {
	Token string `json:"token"`
}

type MessagesResponse struct {
	Messages []string `json:"messages"`
}
