package query

import "github.com/roach88/esquel/internal/render"

// Text builds the chain and renders it to ES|QL text in one step.
//
// The text is independently inspectable without executing anything, so
// translation output can be debugged offline. Building is repeatable:
// calling Text twice yields byte-identical output.
func (b *Builder[T]) Text() (string, error) {
	q, err := b.Build()
	if err != nil {
		return "", err
	}
	return render.Render(q)
}
