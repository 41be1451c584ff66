package builder

import "reflect"

// DefaultPropertyName is the property a builder is published under when
// ExpressOptions.PropertyName is empty.
const DefaultPropertyName = "assets"

// Host is an application a builder can be published on. Set stores an
// application-level property and SetLocal stores a value shared by every
// request's rendering context. *app.DefaultApp implements it.
type Host interface {
	Set(name string, v any)
	SetLocal(name string, v any)
}

// ExpressOptions customizes Express. Empty fields use the defaults.
type ExpressOptions struct {
	// PropertyName is the application property and template local holding
	// the builder. Default: "assets".
	PropertyName string
}

// Express publishes b on h under the configured property name, both as an
// application property and as a rendering local. Calling it again overwrites
// the previous value. A nil host is ignored, including a nil pointer stored
// in the Host interface (such as a nil *app.DefaultApp).
//
// Express is meant for root builders.
//
// Example:
//
//	a := app.New()
//	assets := builder.New(builder.Path("/static"))
//	assets.Express(a)
//	// handlers: a.Get("assets"); templates: {{ .assets.File "app.css" }}
//
//	assets.Express(a, builder.ExpressOptions{PropertyName: "static"})
//	// templates: {{ .static.File "app.css" }}
func (b *Builder) Express(h Host, opts ...ExpressOptions) {
	if isNilHost(h) {
		return
	}
	name := DefaultPropertyName
	if len(opts) > 0 && opts[0].PropertyName != "" {
		name = opts[0].PropertyName
	}
	h.Set(name, b)
	h.SetLocal(name, b)
}

// Setup publishes b on h under the default property name.
func Setup(h Host, b *Builder) { b.Express(h) }

func isNilHost(h Host) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}
