package param

// Builder assembles a Parameter from plain-range settings:
//
//	gain := param.New(ParamGain, "gain").Range(-90, 3).Default(0).Build()
type Builder struct {
	p   *Parameter
	def float64 // plain
}

// New starts an automatable, linear parameter over [0, 1].
func New(id ID, name string) *Builder {
	return &Builder{p: &Parameter{
		ID:        id,
		Name:      name,
		ShortName: name,
		Max:       1,
		Flags:     CanAutomate,
		Gradient:  Linear,
	}}
}

func (b *Builder) ShortName(name string) *Builder { b.p.ShortName = name; return b }
func (b *Builder) Unit(unit string) *Builder      { b.p.Unit = unit; return b }
func (b *Builder) Gradient(g Gradient) *Builder   { b.p.Gradient = g; return b }

// Range sets the plain bounds.
func (b *Builder) Range(min, max float64) *Builder {
	b.p.Min, b.p.Max = min, max
	return b
}

// Default sets the initial plain value.
func (b *Builder) Default(plain float64) *Builder {
	b.def = plain
	return b
}

// Formatter replaces the numeric display and text entry of the plain value.
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.p.formatFunc, b.p.parseFunc = format, parse
	return b
}

// Build normalizes the default against the final range and gradient and
// returns a parameter holding it.
func (b *Builder) Build() *Parameter {
	b.p.DefaultValue = b.p.Normalize(b.def)
	b.p.Reset()
	return b.p
}
