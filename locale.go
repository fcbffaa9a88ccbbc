package pageflow

import (
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// NewBundle creates a message bundle for the given default language and
// loads each message file into it. TOML and YAML files are accepted; the
// language is taken from the file name, e.g. "active.pt-BR.toml".
func NewBundle(defaultLang string, files ...string) (*i18n.Bundle, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, NewConfigError("", "parse language", err)
	}
	b := i18n.NewBundle(tag)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	b.RegisterUnmarshalFunc("yml", yaml.Unmarshal)
	for _, f := range files {
		if _, err := b.LoadMessageFile(f); err != nil {
			return nil, NewConfigError(f, "load messages", err)
		}
	}
	return b, nil
}

// NewLocalizer returns a localizer preferring langs in order.
func NewLocalizer(b *i18n.Bundle, langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(b, langs...)
}

// localize translates s using it as the message id. Missing translations
// fall back to s.
func localize(l *i18n.Localizer, s string) string {
	if l == nil || s == "" {
		return s
	}
	out, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:      s,
		DefaultMessage: &i18n.Message{ID: s, Other: s},
	})
	if out == "" || (err != nil && out == s) {
		return s
	}
	return out
}
