package element

import (
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/view"
)

// Proxy is a convenience for elements that only combine other elements. The
// element returned by Representation fills the proxy, which has no view of
// its own.
type Proxy interface {
	Type() *ident.Type
	Representation() Element
}

// FromProxy turns a Proxy into an Element.
func FromProxy(p Proxy) Element { return proxyElement{p} }

type proxyElement struct{ p Proxy }

func (e proxyElement) Type() *ident.Type                        { return e.p.Type() }
func (e proxyElement) Content() Content                         { return Delegate(e.p.Representation()) }
func (proxyElement) Backing(bounds, extent geom.Rect) view.Desc { return nil }

// Contextual is a convenience for elements whose representation depends on
// the environment.
type Contextual interface {
	Type() *ident.Type
	Representation(env Env) Element
}

// FromContextual turns a Contextual into an Element.
func FromContextual(c Contextual) Element { return contextualElement{c} }

type contextualElement struct{ c Contextual }

func (e contextualElement) Type() *ident.Type                        { return e.c.Type() }
func (e contextualElement) Content() Content                         { return Builder(e.c.Representation) }
func (contextualElement) Backing(bounds, extent geom.Rect) view.Desc { return nil }
