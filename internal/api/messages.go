package api

import "time"

// Record is a log record as stored on the server.
type Record struct {
	ID         int64     `json:"id"`
	Date       string    `json:"date"`
	LoggedAt   time.Time `json:"logged_at"`
	ScaleValue int       `json:"scale_value"`
	Count      int       `json:"count"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RecordFields is the client-editable part of a Record.
type RecordFields struct {
	Date       string    `json:"date"`
	LoggedAt   time.Time `json:"logged_at"`
	ScaleValue int       `json:"scale_value"`
	Count      int       `json:"count"`
	Note       string    `json:"note,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterUserResponse struct {
	UserID string `json:"user_id"`
}

type GetSaltRequest struct {
	Username string `json:"username"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username          string `json:"username"`
	VerifierCandidate []byte `json:"verifier_candidate"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ListRecordsRequest struct{}

type ListRecordsResponse struct {
	Records []*Record `json:"records"`
}

type GetRecordsByDateRequest struct {
	Date string `json:"date"`
}

type GetRecordsByDateResponse struct {
	Records []*Record `json:"records"`
}

type CreateRecordRequest struct {
	Fields *RecordFields `json:"fields"`
}

type CreateRecordResponse struct {
	Record *Record `json:"record"`
}

type UpdateRecordRequest struct {
	ID     int64         `json:"id"`
	Fields *RecordFields `json:"fields"`
}

type UpdateRecordResponse struct {
	Record *Record `json:"record"`
}

type DeleteRecordRequest struct {
	ID int64 `json:"id"`
}

type DeleteRecordResponse struct{}
