package app

// Set stores an application property, replacing any previous value.
//
// Example:
//
//	assets.Express(a) // a.Set("assets", assets) and a.SetLocal("assets", assets)
//	b := a.Get("assets").(*builder.Builder)
func (a *DefaultApp) Set(name string, v any) {
	a.props[name] = v
	a.Logger().Debug("app property set", "name", name)
}

// Get returns the application property stored under name. When it is missing
// (or nil) the optional default is returned, otherwise nil.
func (a *DefaultApp) Get(name string, def ...any) any {
	if v := a.props[name]; v != nil {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// SetLocal stores a rendering local. Locals are visible to every request's
// Ctx (Local, Locals) and to templates executed with Ctx.Render.
func (a *DefaultApp) SetLocal(name string, v any) {
	a.locals[name] = v
	a.Logger().Debug("app local set", "name", name)
}

// Locals returns a copy of the rendering locals.
func (a *DefaultApp) Locals() map[string]any {
	out := make(map[string]any, len(a.locals))
	for k, v := range a.locals {
		out[k] = v
	}
	return out
}
