package packets

// body for logging in
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// body for PUT /api/admin/messages
type MessagesRequest struct {
	Messages []string `json:"messages" binding:"required,dive,required"`
}
