package locale

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.English, language.Russian}

var tables = map[language.Tag]map[MessageID]string{
	language.English: {
		MsgGlobalNamespace: "<global namespace>",
		MsgError:           "<error>",
		MsgNull:            "<null>",
		MsgVoid:            "void",
		MsgAnonymousMethod: "anonymous method",
		MsgLambda:          "lambda expression",
		MsgMethodGroup:     "method group",
		MsgArgList:         "__arglist",
		MsgKindNamespace:   "namespace",
		MsgKindClass:       "class",
		MsgKindStruct:      "struct",
		MsgKindInterface:   "interface",
		MsgKindEnum:        "enum",
		MsgKindMethod:      "method",
		MsgKindProperty:    "property",
		MsgKindField:       "field",
		MsgKindEvent:       "event",
		MsgKindTypeParam:   "type parameter",
		MsgKindLocal:       "local variable",
	},
	language.Russian: {
		MsgGlobalNamespace: "<глобальное пространство имён>",
		MsgError:           "<ошибка>",
		MsgNull:            "<null>",
		MsgVoid:            "void",
		MsgAnonymousMethod: "анонимный метод",
		MsgLambda:          "лямбда-выражение",
		MsgMethodGroup:     "группа методов",
		MsgArgList:         "__arglist",
		MsgKindNamespace:   "пространство имён",
		MsgKindClass:       "класс",
		MsgKindStruct:      "структура",
		MsgKindInterface:   "интерфейс",
		MsgKindEnum:        "перечисление",
		MsgKindMethod:      "метод",
		MsgKindProperty:    "свойство",
		MsgKindField:       "поле",
		MsgKindEvent:       "событие",
		MsgKindTypeParam:   "параметр типа",
		MsgKindLocal:       "локальная переменная",
	},
}

var (
	builder = mustBuild()
	matcher = language.NewMatcher(supported)
)

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, table := range tables {
		for id, text := range table {
			if err := b.SetString(tag, id.String(), text); err != nil {
				panic(fmt.Errorf("locale: register %s/%s: %w", tag, id, err))
			}
		}
	}
	return b
}

// Catalog resolves message identifiers to text for a single language.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns the catalog for the supported language closest to tag.
func New(tag language.Tag) *Catalog {
	_, idx, _ := matcher.Match(tag)
	best := supported[idx]
	return &Catalog{tag: best, printer: message.NewPrinter(best, message.Catalog(builder))}
}

// Default returns the English catalog.
func Default() *Catalog { return New(language.English) }

// Match parses a BCP 47 tag such as "ru-RU" and returns the closest catalog.
func Match(tag string) (*Catalog, error) {
	if tag == "" {
		return Default(), nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	return New(t), nil
}

// Tag returns the language the catalog serves.
func (c *Catalog) Tag() language.Tag { return c.tag }

// Token returns the text registered for id.
func (c *Catalog) Token(id MessageID) string {
	if !id.Valid() {
		panic(fmt.Errorf("locale: unknown message id %d", id))
	}
	return c.printer.Sprintf(id.String())
}

// Supported lists the languages with a registered table.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}
