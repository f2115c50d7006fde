package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code surfaces on the bot side.
type Metadata struct {
	AlertText string
	ShowAlert bool
	Retryable bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		AlertText: "Noto'g'ri ma'lumot kiritildi.",
		ShowAlert: false,
		Retryable: false,
	},
	CodeForbidden: {
		AlertText: "⛔️ Sizda bu amalni bajarish huquqi yo'q.",
		ShowAlert: true,
		Retryable: false,
	},
	CodeNotFound: {
		AlertText: "Topilmadi!",
		ShowAlert: true,
		Retryable: false,
	},
	CodeConflict: {
		AlertText: "Amal bajarilmadi, qayta urinib ko'ring.",
		ShowAlert: true,
		Retryable: false,
	},
	CodeStateConflict: {
		AlertText: "Bu buyurtma allaqachon yakunlangan.",
		ShowAlert: true,
		Retryable: false,
	},
	CodeInternal: {
		AlertText: "Xatolik yuz berdi. Keyinroq urinib ko'ring.",
		ShowAlert: true,
		Retryable: true,
	},
	CodeDependency: {
		AlertText: "Xizmat vaqtincha ishlamayapti.",
		ShowAlert: true,
		Retryable: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf extracts the code, defaulting to CodeInternal for plain errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}
