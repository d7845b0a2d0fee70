package dto

import "time"

type QuestionCreateDTO struct {
	QuizID        uint    `json:"quiz_id" binding:"required"`
	Statement     string  `json:"statement" binding:"required"`
	Option1       string  `json:"option1" binding:"required"`
	Option2       string  `json:"option2" binding:"required"`
	Option3       *string `json:"option3"`
	Option4       *string `json:"option4"`
	CorrectOption int     `json:"correct_option" binding:"required,min=1,max=4"`
}

type QuestionUpdateDTO struct {
	Statement     *string `json:"statement"`
	Option1       *string `json:"option1"`
	Option2       *string `json:"option2"`
	Option3       *string `json:"option3"`
	Option4       *string `json:"option4"`
	CorrectOption *int    `json:"correct_option"`
}

// QuestionResponseDTO is the admin view and includes the correct option.
type QuestionResponseDTO struct {
	ID            uint      `json:"id"`
	QuizID        uint      `json:"quiz_id"`
	Statement     string    `json:"statement"`
	Option1       string    `json:"option1"`
	Option2       string    `json:"option2"`
	Option3       *string   `json:"option3,omitempty"`
	Option4       *string   `json:"option4,omitempty"`
	CorrectOption int       `json:"correct_option"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuestionPublicDTO is what quiz takers see; the correct option never
// leaves the server before submission.
type QuestionPublicDTO struct {
	ID        uint     `json:"id"`
	Statement string   `json:"statement"`
	Options   []string `json:"options"`
}
