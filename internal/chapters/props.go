package chapters

import (
	"context"
	"time"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/props"
	. "github.com/proptree/proptree/pkg/vdom"
)

// Chapter 4: passing numbers, booleans, lists, nested bundles and
// callbacks as properties.

const greeting = "Welcome to React Challenge, 2024"

// Age renders "The person is <age> years old."
var Age = compose.Func("Age", func(p props.Bundle) *VNode {
	return Div("The person is ", prop(p, "age"), " years old.")
}, "age")

// Weight renders the weight of an object on earth.
var Weight = compose.Func("Weight", func(p props.Bundle) *VNode {
	return P("The weight of the object on earth is ", prop(p, "weight"), " N.")
}, "weight")

// Status picks one of two texts from a boolean property.
var Status = compose.Func("Status", func(p props.Bundle) *VNode {
	return P(IfElse(prop(p, "status").Truthy(),
		Text("Old enough to drive"),
		Text("Too young for driving"),
	))
}, "status")

// Skills renders a list keyed by position.
var Skills = compose.Define("Skills", func(p props.Bundle) (*VNode, error) {
	skills, err := p.GetList("skills")
	if err != nil {
		return nil, err
	}
	return Ul(Each(skills, func(skill props.Value, i int) *VNode {
		return Li(Key(i), skill)
	})), nil
}, "skills")

// DataHeader destructures a nested "data" bundle.
var DataHeader = compose.Func("Header", func(p props.Bundle) *VNode {
	return Header(
		Div(Class("header-wrapper"),
			H1(prop(p, "data.welcome")),
			H2(prop(p, "data.title")),
			H3(prop(p, "data.subtitle")),
			P(prop(p, "data.author.firstName"), " ", prop(p, "data.author.lastName")),
			Small(dateText(prop(p, "data.date"))),
		),
	)
}, "data.welcome", "data.title", "data.subtitle",
	"data.author.firstName", "data.author.lastName", "data.date")

// ActionButton renders a button wired to the "onClick" callback.
var ActionButton = compose.Func("Button", func(p props.Bundle) *VNode {
	return Button(OnClick(prop(p, "onClick")), prop(p, "text"))
}, "text")

// alertAction returns a callback that raises msg as an alert.
func alertAction(msg string) props.Value {
	return props.Func(func(ctx context.Context) error {
		mount.Alert(ctx, msg)
		return nil
	})
}

// showTime alerts the date at the time of the click.
var showTime = props.Func(func(ctx context.Context) error {
	mount.Alert(ctx, ShowDate(time.Now()))
	return nil
})

// PropsApp is the chapter 4 page, one section per kind of property.
var PropsApp = compose.Define("App", func(p props.Bundle) (*VNode, error) {
	current, err := p.GetNumber("currentYear")
	if err != nil {
		return nil, err
	}
	born, err := p.GetNumber("birthYear")
	if err != nil {
		return nil, err
	}
	gravity, err := p.GetNumber("gravity")
	if err != nil {
		return nil, err
	}
	mass, err := p.GetNumber("mass")
	if err != nil {
		return nil, err
	}
	driverBorn, err := p.GetNumber("driverBirthYear")
	if err != nil {
		return nil, err
	}
	return Div(Class("app"),
		DataHeader.With(props.Of("data", prop(p, "data"))),
		Age.With(props.Of("age", current-born)),
		Weight.With(props.Of("weight", gravity*mass)),
		Status.With(props.Of("status", current-driverBorn >= 18)),
		Skills.With(props.Of("skills", prop(p, "skills"))),
		ActionButton.With(props.Of("text", "Greet People", "onClick", prop(p, "greetPeople"))),
		ActionButton.With(props.Of("text", "Show Time", "onClick", prop(p, "handleTime"))),
	), nil
}, "currentYear", "birthYear", "gravity", "mass", "driverBirthYear", "data", "skills")

var propsExample = Example{
	Name:    "props",
	Chapter: 4,
	Title:   "Props",
	Summary: "number, boolean, list, nested and callback properties",
	App:     PropsApp,
	Props: func(now time.Time) props.Bundle {
		return props.Of(
			"currentYear", 2024,
			"birthYear", 571,
			"gravity", 9.81,
			"mass", 75,
			"driverBirthYear", 2015,
			"skills", []string{"HTML", "CSS", "JavaScript"},
			"data", props.Of(
				"welcome", "Welcome to 30 Days Of React",
				"title", "Getting Started React",
				"subtitle", "JavaScript Library",
				"author", props.Of("firstName", "Aytekin", "lastName", "Kaplan"),
				"date", now,
			),
			"greetPeople", alertAction(greeting),
			"handleTime", showTime,
		)
	},
}
