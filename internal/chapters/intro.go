package chapters

import (
	"time"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/props"
	. "github.com/proptree/proptree/pkg/vdom"
)

// Chapter 1: plain elements built from constants, composed into one app.

var introHeader = compose.Define("Header", func(p props.Bundle) (*VNode, error) {
	return Header(
		Div(Class("header-wrapper"),
			H1(prop(p, "welcome")),
			H2(prop(p, "title")),
			H3(prop(p, "subtitle")),
			P("Instructor: ", prop(p, "author.firstName"), " ", prop(p, "author.lastName")),
			Small("Date: ", prop(p, "date")),
		),
	), nil
}, "welcome", "title", "subtitle", "author.firstName", "author.lastName", "date")

// sum renders "a + b = a+b". The total is computed from the bundle the
// paragraph is rendered with.
var sum = compose.Define("Sum", func(p props.Bundle) (*VNode, error) {
	total := props.Computed(func(b props.Bundle) props.Value {
		a, _ := b.GetNumber("numOne")
		c, _ := b.GetNumber("numTwo")
		return props.Number(a + c)
	})
	if _, err := p.GetNumber("numOne"); err != nil {
		return nil, err
	}
	if _, err := p.GetNumber("numTwo"); err != nil {
		return nil, err
	}
	return P(prop(p, "numOne"), " + ", prop(p, "numTwo"), " = ", total), nil
}, "numOne", "numTwo")

// personAge renders "<first> <last> is <age> years old".
var personAge = compose.Define("PersonAge", func(p props.Bundle) (*VNode, error) {
	born, err := p.GetNumber("yearBorn")
	if err != nil {
		return nil, err
	}
	now, err := p.GetNumber("currentYear")
	if err != nil {
		return nil, err
	}
	return P(prop(p, "author.firstName"), " ", prop(p, "author.lastName"),
		" is ", props.Number(now-born), " years old"), nil
}, "author.firstName", "author.lastName", "yearBorn", "currentYear")

// techsByValue renders an unordered list keyed by the tech names.
var techsByValue = compose.Define("TechList", func(p props.Bundle) (*VNode, error) {
	techs, err := p.GetList("techs")
	if err != nil {
		return nil, err
	}
	return Ul(Each(techs, func(tech props.Value, _ int) *VNode {
		return Li(Key(tech.Text()), tech)
	})), nil
}, "techs")

var introMain = compose.Func("Main", func(p props.Bundle) *VNode {
	return Main(
		Div(Class("main-wrapper"),
			P("Prerequisite to get started ", Strong(Em("react.js")), ":"),
			techsByValue.With(p),
			sum.With(p),
			personAge.With(p),
		),
	)
})

var introFooter = compose.Func("Footer", func(p props.Bundle) *VNode {
	return Footer(Div(Class("footer-wrapper"), P(prop(p, "copyRight"))))
}, "copyRight")

// IntroApp is the chapter 1 page.
var IntroApp = compose.Func("App", func(p props.Bundle) *VNode {
	return Div(Class("app"),
		introHeader.With(p),
		introMain.With(p),
		introFooter.With(p),
	)
})

var introExample = Example{
	Name:    "intro",
	Chapter: 1,
	Title:   "Getting Started React",
	Summary: "header, main and footer built from constants",
	App:     IntroApp,
	Props: func(time.Time) props.Bundle {
		return props.Of(
			"welcome", "Welcome to React",
			"title", "Getting Started React",
			"subtitle", "JavaScript Library",
			"author", props.Of("firstName", "Aytekin", "lastName", "Kaplan"),
			"date", "August 17, 2024",
			"numOne", 3,
			"numTwo", 2,
			"yearBorn", 571,
			"currentYear", 2024,
			"techs", []string{"HTML", "CSS", "JavaScript"},
			"copyRight", "Copyright 2024",
		)
	},
}
