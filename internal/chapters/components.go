package chapters

import (
	"math/rand/v2"
	"time"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/props"
	. "github.com/proptree/proptree/pkg/vdom"
)

// Chapter 3: the page split into function components.

const hexDigits = "0123456789abcdef"

// HexColor returns a random "#rrggbb" colour drawn from r.
func HexColor(r *rand.Rand) string {
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i := 1; i < len(b); i++ {
		b[i] = hexDigits[r.IntN(len(hexDigits))]
	}
	return string(b)
}

// hexaColor shows a colour block. The colour comes from a generator seeded
// with the "seed" property, so equal bundles give equal trees.
var hexaColor = compose.Define("HexaColor", func(p props.Bundle) (*VNode, error) {
	seed, err := p.GetNumber("seed")
	if err != nil {
		return nil, err
	}
	bg := HexColor(rand.New(rand.NewPCG(uint64(seed), 0)))
	style := props.Of(
		"height", "100px",
		"display", "flex",
		"justifyContent", "center",
		"alignItems", "center",
		"fontFamily", "Montserrat",
		"margin", "2px auto",
		"borderRadius", "5px",
		"width", "75%",
		"border", "2px solid black",
		"backgroundColor", bg,
	)
	return Div(StyleOf(style), H2(bg)), nil
}, "seed")

var componentsHeader = compose.Func("Header", func(props.Bundle) *VNode {
	return Header(
		Div(Class("header-wrapper"),
			H1("Welcome to React"),
			H2("Getting Started with React"),
			H3("JavaScript Library"),
			P("Aytekin Kaplan"),
			Small("August 19, 2024"),
		),
	)
})

var componentsUserCard = compose.Func("UserCard", func(props.Bundle) *VNode {
	return Div(Class("user-card"),
		Img(SrcValue(props.Resource("images/aytekin.jpg")), Alt("Aytekin Kaplan")),
		H2("Aytekin Kaplan"),
	)
})

var componentsTechList = compose.Func("TechList", func(props.Bundle) *VNode {
	techs := []string{"HTML", "CSS", "JavaScript"}
	return Ul(Each(techs, func(tech string, _ int) *VNode {
		return Li(Key(tech), tech)
	}))
})

var actionButtonStyle = props.Of(
	"padding", "10px 20px",
	"background", "rgb(0, 255, 0)",
	"border", "none",
	"borderRadius", 5,
)

var componentsButton = compose.Func("Button", func(props.Bundle) *VNode {
	return Button(StyleOf(actionButtonStyle), "Action")
})

var componentsMain = compose.Define("Main", func(p props.Bundle) (*VNode, error) {
	seed, err := p.GetNumber("seed")
	if err != nil {
		return nil, err
	}
	return Main(
		Div(Class("main-wrapper"),
			P("Prerequisite to get started with React.js:"),
			componentsTechList.With(props.Bundle{}),
			componentsUserCard.With(props.Bundle{}),
			componentsButton.With(props.Bundle{}),
			Div(
				hexaColor.With(props.Of("seed", seed)),
				hexaColor.With(props.Of("seed", seed+1)),
			),
		),
	), nil
}, "seed")

var componentsFooter = compose.Func("Footer", func(props.Bundle) *VNode {
	return Footer(Div(Class("footer-wrapper"), P("Copyright 2024")))
})

// ComponentsApp is the chapter 3 page.
var ComponentsApp = compose.Func("App", func(p props.Bundle) *VNode {
	return Div(Class("app"),
		componentsHeader.With(props.Bundle{}),
		componentsMain.With(p),
		componentsFooter.With(props.Bundle{}),
	)
})

var componentsExample = Example{
	Name:    "components",
	Chapter: 3,
	Title:   "Getting Started with React",
	Summary: "function components with styled colour blocks",
	App:     ComponentsApp,
	Props: func(now time.Time) props.Bundle {
		return props.Of("seed", now.Unix())
	},
}
