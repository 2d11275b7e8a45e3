package debug

import (
	"golang.org/x/text/language"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// These interfaces mirror the accessor methods on dx7.ROMLoadError,
// dx7.ChecksumError, and cpu.IllegalOpcodeError. Matching on the
// interface rather than the concrete type avoids an import cycle
// (both packages already import this one for Logger).
type romLoadErrorer interface {
	ROMLoadFields() (path string, got, want int, err error)
}

type checksumErrorer interface {
	ChecksumFields() (path string, sum int)
}

type illegalOpcodeErrorer interface {
	IllegalOpcodeFields() (opcode uint8, pc uint16)
}

// Localizer translates the small set of user-facing diagnostics the
// core emits (ROM-load failure, cartridge-checksum failure,
// illegal-opcode trap) into the caller's locale. Everything else keeps
// using plain wrapped Go errors; these three are the ones a player
// actually sees, so they get a message catalog.
type Localizer struct {
	bundle *i18n.Bundle
}

// NewLocalizer builds a Localizer with English and Japanese message
// catalogs registered for the diagnostics above. Japanese is the
// obvious second locale for a Yamaha DX7 tool.
func NewLocalizer() *Localizer {
	bundle := i18n.NewBundle(language.English)

	bundle.MustAddMessages(language.English,
		&i18n.Message{
			ID:    "romLoadFailureRead",
			Other: `could not read "{{.Path}}": {{.Reason}}`,
		},
		&i18n.Message{
			ID:    "romLoadFailureSize",
			Other: `"{{.Path}}" is not a valid image (got {{.Got}} bytes, want {{.Want}})`,
		},
		&i18n.Message{
			ID:    "checksumFailure",
			Other: `"{{.Path}}" failed its SysEx checksum (sum={{.Sum}})`,
		},
		&i18n.Message{
			ID:    "illegalOpcode",
			Other: `illegal opcode {{.Opcode}} at address {{.PC}}`,
		},
	)
	bundle.MustAddMessages(language.Japanese,
		&i18n.Message{
			ID:    "romLoadFailureRead",
			Other: `"{{.Path}}" を読み込めませんでした: {{.Reason}}`,
		},
		&i18n.Message{
			ID:    "romLoadFailureSize",
			Other: `"{{.Path}}" は正しいイメージではありません ({{.Got}} バイト、{{.Want}} バイト必要)`,
		},
		&i18n.Message{
			ID:    "checksumFailure",
			Other: `"{{.Path}}" のSysExチェックサムが不正です (合計={{.Sum}})`,
		},
		&i18n.Message{
			ID:    "illegalOpcode",
			Other: `アドレス {{.PC}} に不正なオペコード {{.Opcode}} があります`,
		},
	)

	return &Localizer{bundle: bundle}
}

// Localize translates err into locale (a BCP 47 tag such as "en" or
// "ja") when it recognizes the error's type, and falls back to err's
// plain Error() text for anything else.
func (l *Localizer) Localize(locale string, err error) string {
	if err == nil {
		return ""
	}
	loc := i18n.NewLocalizer(l.bundle, locale)

	switch e := err.(type) {
	case romLoadErrorer:
		path, got, want, readErr := e.ROMLoadFields()
		if readErr != nil {
			return loc.MustLocalize(&i18n.LocalizeConfig{
				MessageID:    "romLoadFailureRead",
				TemplateData: map[string]any{"Path": path, "Reason": readErr.Error()},
			})
		}
		return loc.MustLocalize(&i18n.LocalizeConfig{
			MessageID:    "romLoadFailureSize",
			TemplateData: map[string]any{"Path": path, "Got": got, "Want": want},
		})
	case checksumErrorer:
		path, sum := e.ChecksumFields()
		return loc.MustLocalize(&i18n.LocalizeConfig{
			MessageID:    "checksumFailure",
			TemplateData: map[string]any{"Path": path, "Sum": sum},
		})
	case illegalOpcodeErrorer:
		opcode, pc := e.IllegalOpcodeFields()
		return loc.MustLocalize(&i18n.LocalizeConfig{
			MessageID: "illegalOpcode",
			TemplateData: map[string]any{
				"Opcode": formatHex8(opcode),
				"PC":     formatHex16(pc),
			},
		})
	default:
		return err.Error()
	}
}

func formatHex8(v uint8) string    { return "0x" + hexDigits(uint32(v), 2) }
func formatHex16(v uint16) string { return "0x" + hexDigits(uint32(v), 4) }

func hexDigits(v uint32, width int) string {
	const digits = "0123456789abcdef"
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = digits[v&0xF]
		v >>= 4
	}
	return string(out)
}
