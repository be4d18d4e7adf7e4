package proto

type User struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Attachment struct {
	Url  string `json:"url"`
	Type string `json:"type"`
}

type Memory struct {
	Id          string        `json:"id"`
	UserId      string        `json:"user_id"`
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Attachments []*Attachment `json:"attachments"`
	CreatedAt   string        `json:"created_at,omitempty"`
}

// auth

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token" masq:"secret"`
	RefreshToken string `json:"refresh_token" masq:"secret"`
	ExpiresAt    int64  `json:"expires_at"`
	User         *User  `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" masq:"secret"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token" masq:"secret"`
	RefreshToken string `json:"refresh_token" masq:"secret"`
	ExpiresAt    int64  `json:"expires_at"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token" masq:"secret"`
}

type SignOutResponse struct{}

type GetUserRequest struct{}

type GetUserResponse struct {
	User *User `json:"user"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// relational store

type ListMemoriesRequest struct {
	UserId string `json:"user_id"`
}

type ListMemoriesResponse struct {
	Memories []*Memory `json:"memories"`
}

type InsertMemoryRequest struct {
	Memory *Memory `json:"memory"`
}

type InsertMemoryResponse struct {
	Memory *Memory `json:"memory"`
}

type DeleteMemoryRequest struct {
	Id string `json:"id"`
}

type DeleteMemoryResponse struct{}

// object store

type CreateUploadURLRequest struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
}

type CreateUploadURLResponse struct {
	Key string `json:"key"`
	Url string `json:"url"`
}

type GetPublicURLRequest struct {
	Key string `json:"key"`
}

type GetPublicURLResponse struct {
	Url string `json:"url"`
}
