package meta

import (
	"net/url"
	"reflect"
	"regexp"
	"time"

	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/types"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// leafTypes are converted by dedicated leaf converters and are never
// decomposed into properties.
var leafTypes = []struct {
	name string
	rt   reflect.Type
}{
	{"Bytes", reflect.TypeFor[[]byte]()},
	{"Time", reflect.TypeFor[time.Time]()},
	{"Duration", reflect.TypeFor[time.Duration]()},
	{"UUID", reflect.TypeFor[uuid.UUID]()},
	{"URL", reflect.TypeFor[*url.URL]()},
	{"Locale", reflect.TypeFor[language.Tag]()},
	{"Regexp", reflect.TypeFor[*regexp.Regexp]()},
	{"Version", reflect.TypeFor[types.Version]()},
	{"Point", reflect.TypeFor[types.Point]()},
	{"Size", reflect.TypeFor[types.Size]()},
	{"Line", reflect.TypeFor[types.Line]()},
	{"Rect", reflect.TypeFor[types.Rect]()},
	{"JSON", reflect.TypeFor[*ir.Node]()},
}
