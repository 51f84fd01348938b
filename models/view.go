package models

// Типы ниже описывают исходящую поверхность UI. Платформенный мост (вне этого
// сервиса) превращает их в embed'ы и компоненты конкретного чат-клиента.

type ControlKind string

const (
	ControlButton ControlKind = "button"
	ControlSelect ControlKind = "select"
)

type ControlStyle string

const (
	StylePrimary   ControlStyle = "primary"
	StyleSecondary ControlStyle = "secondary"
	StyleDanger    ControlStyle = "danger"
)

// Control — интерактивный элемент вида. ID всегда содержит continuation
// token, выпущенный для конкретного пользователя.
type Control struct {
	Kind        ControlKind  `json:"kind"`
	ID          string       `json:"id"`
	Label       string       `json:"label,omitempty"`
	Style       ControlStyle `json:"style,omitempty"`
	Disabled    bool         `json:"disabled,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Options     []Option     `json:"options,omitempty"`
}

// Option — один пункт выпадающего меню. Value тоже является токеном.
type Option struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// View — отрендеренная поверхность: заголовок, текст, поля и контролы.
type View struct {
	Title    string    `json:"title"`
	Body     string    `json:"body,omitempty"`
	Color    int       `json:"color,omitempty"`
	Fields   []Field   `json:"fields,omitempty"`
	Footer   string    `json:"footer,omitempty"`
	Controls []Control `json:"controls,omitempty"`
}

// FormInput — одно текстовое поле модальной формы.
type FormInput struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Value    string `json:"value,omitempty"`
}

// Form — модальная форма. ID содержит continuation token, по нему же
// авторизуется последующий сабмит.
type Form struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Inputs []FormInput `json:"inputs"`
}

// Response — результат обработки одного входящего события. Заполнено ровно
// одно из полей View/Form/Message.
type Response struct {
	View      *View  `json:"view,omitempty"`
	Form      *Form  `json:"form,omitempty"`
	Message   string `json:"message,omitempty"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
}
