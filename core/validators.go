package core

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	validatorsOnce sync.Once

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// InitValidators instantiates the app validator and its `en` translator.
// Safe to call more than once; domain packages register their own tags on top.
func InitValidators() {
	validatorsOnce.Do(func() {
		Validate = validator.New()

		enLoc := en.New()
		Translator, _ = ut.New(enLoc, enLoc).GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

		// Use JSON tag names for errors instead of Go struct names.
		Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		RegisterCustomTranslation(requiredTag, requiredText, true)
		RegisterCustomTranslation(requiredWithTag, requiredText, true)
	})
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}
