package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
// Detail 은 검증 오류일 때만 채워진다.
type ErrorResponseDTO struct {
	Error  string `json:"error" example:"validation_error"`
	Detail string `json:"detail,omitempty" example:"message must not be empty"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"Hello World"`
}
