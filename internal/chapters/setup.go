package chapters

import (
	"fmt"
	"time"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/props"
	. "github.com/proptree/proptree/pkg/vdom"
)

// Chapter 2: the first project. Header texts mix literals with an entry
// computed from the author, and the list is keyed by position.

// introduceAuthor is the computed header text.
var introduceAuthor = props.Computed(func(b props.Bundle) props.Value {
	first, _ := b.GetText("author.firstName")
	last, _ := b.GetText("author.lastName")
	age, _ := b.GetText("age")
	return props.String(fmt.Sprintf("I am %s %s and I am %s years old.", first, last, age))
})

var setupHeader = compose.Define("Header", func(p props.Bundle) (*VNode, error) {
	texts, err := p.GetList("texts")
	if err != nil {
		return nil, err
	}
	var body, secondLast, last []props.Value
	switch n := len(texts); {
	case n >= 2:
		body, secondLast, last = texts[:n-2], texts[n-2:n-1], texts[n-1:]
	case n == 1:
		last = texts
	}
	return Header(
		Div(Class("header-wrapper"),
			H1(prop(p, "welcome")),
			H2(prop(p, "title")),
			H3(prop(p, "subtitle")),
			Each(body, func(text props.Value, i int) *VNode {
				return P(Key(i), text)
			}),
			Range(secondLast, func(text props.Value, _ int) *VNode {
				return P(text)
			}),
			Range(last, func(text props.Value, _ int) *VNode {
				return S(text)
			}),
		),
	), nil
}, "welcome", "title", "subtitle", "author", "texts")

// techsByIndex renders an unordered list keyed by position.
var techsByIndex = compose.Define("TechList", func(p props.Bundle) (*VNode, error) {
	techs, err := p.GetList("techs")
	if err != nil {
		return nil, err
	}
	return Ul(Each(techs, func(tech props.Value, i int) *VNode {
		return Li(Key(i), tech)
	})), nil
}, "techs")

var setupUser = compose.Func("User", func(p props.Bundle) *VNode {
	return Div(Img(SrcValue(prop(p, "image")), Alt(prop(p, "author.firstName").Text())))
}, "image", "author.firstName")

var setupMain = compose.Func("Main", func(p props.Bundle) *VNode {
	return Main(
		Div(Class("main-wrapper"),
			P("Prerequisite to get started ", Strong(Em("react.js")), ":"),
			techsByIndex.With(p),
			P(prop(p, "numOne"), " + ", prop(p, "numTwo"), " = ", prop(p, "sum")),
			P(prop(p, "author.firstName"), " ", prop(p, "author.lastName"), " is ", prop(p, "age"), " years old"),
			setupUser.With(p),
		),
	)
}, "numOne", "numTwo", "sum", "age")

// SetupApp is the chapter 2 page.
var SetupApp = compose.Func("App", func(p props.Bundle) *VNode {
	return Div(Class("app"),
		setupHeader.With(p),
		setupMain.With(p),
		introFooter.With(p),
	)
})

var setupExample = Example{
	Name:    "setup",
	Chapter: 2,
	Title:   "Getting Started React",
	Summary: "header texts mixing literals and computed entries",
	App:     SetupApp,
	Props: func(now time.Time) props.Bundle {
		const numOne, numTwo, yearBorn = 3, 2, 571
		texts := []props.Value{
			props.String("React is a JavaScript library for building user interfaces."),
			props.String("React is used to build single-page applications."),
			props.String("React is used to build mobile applications."),
			props.String("React is used to build web applications."),
			props.String("React is used to build desktop applications."),
			props.String("React is used to build server applications."),
			props.String("React is used to build cloud applications."),
			props.String("React is used to build native applications."),
			props.String("React is used to build hybrid applications."),
			props.String("React is used to build enterprise applications."),
			props.String("React is used to build real-time applications."),
			props.String("React is used to build web applications."),
			introduceAuthor,
			props.String("Copyright 2024"),
		}
		return props.Of(
			"welcome", "Welcome to React",
			"title", "Getting Started React",
			"subtitle", "JavaScript Library",
			"author", props.Of("firstName", "Aytekin", "lastName", "Kaplan"),
			"texts", props.List(texts...),
			"numOne", numOne,
			"numTwo", numTwo,
			"sum", numOne+numTwo,
			"age", now.Year()-yearBorn,
			"techs", []string{"HTML", "CSS", "JavaScript"},
			"image", props.Resource("images/aytekin.jpg"),
			"copyRight", "Copyright 2024",
		)
	},
}
