package models

// Входящие события от платформенного моста. Каждое событие самодостаточно:
// процесс не хранит никакого состояния между ними.

// SlashInvocation — вызов /esports с опциями.
type SlashInvocation struct {
	PrincipalID  string `json:"principalId"`
	TargetUserID string `json:"targetUserId,omitempty"`
	AdminPanel   bool   `json:"adminPanel,omitempty"`
	Portal       bool   `json:"portal,omitempty"`
	IsAdmin      bool   `json:"isAdmin,omitempty"`
}

// ControlActivation — нажатие кнопки или выбор пункта меню.
// SelectedValue заполнен только для меню.
type ControlActivation struct {
	PrincipalID   string `json:"principalId"`
	ControlID     string `json:"controlId"`
	SelectedValue string `json:"selectedValue,omitempty"`
	IsAdmin       bool   `json:"isAdmin,omitempty"`
}

// FormSubmission — сабмит модальной формы.
type FormSubmission struct {
	PrincipalID string            `json:"principalId"`
	FormID      string            `json:"formId"`
	Fields      map[string]string `json:"fields"`
	IsAdmin     bool              `json:"isAdmin,omitempty"`
}

// Attachment — метаданные файла, который мост скачает по URL.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AttachmentMessage — сообщение с файлами от пользователя, у которого открыта
// сессия загрузки.
type AttachmentMessage struct {
	PrincipalID string       `json:"principalId"`
	Attachments []Attachment `json:"attachments"`
}
