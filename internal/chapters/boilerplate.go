package chapters

import (
	"time"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/props"
	. "github.com/proptree/proptree/pkg/vdom"
)

// Chapter 4 final app: every earlier idea in one page.

var techLogos = map[string]string{
	"HTML":       "images/html_logo.png",
	"CSS":        "images/css_logo.png",
	"JavaScript": "images/js_logo.png",
	"React":      "images/react_logo.png",
}

func techLogo(tech string) *VNode {
	return Img(SrcValue(props.Resource(techLogos[tech])), Alt(tech+" Logo"), Class("tech-logo"))
}

var boilerplateHeader = compose.Func("Header", func(p props.Bundle) *VNode {
	return Header(Class("dribbble-header"),
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

// LogoTechList renders each tech with its logo, keyed by name.
var LogoTechList = compose.Define("TechList", func(p props.Bundle) (*VNode, error) {
	techs, err := p.GetList("techs")
	if err != nil {
		return nil, err
	}
	return Ul(Class("tech-list"), Each(techs, func(tech props.Value, _ int) *VNode {
		name := tech.Text()
		return Li(Key(name), Class("tech-item"),
			Switch(name,
				Case_("HTML", func() *VNode { return techLogo("HTML") }),
				Case_("CSS", func() *VNode { return techLogo("CSS") }),
				Case_("JavaScript", func() *VNode { return techLogo("JavaScript") }),
				Case_("React", func() *VNode { return techLogo("React") }),
			),
			Span(Class("tech-name"), name),
		)
	})), nil
}, "techs")

// UserCard renders the user's picture and name.
var UserCard = compose.Func("UserCard", func(p props.Bundle) *VNode {
	return Div(Class("user-card"),
		Img(SrcValue(prop(p, "user.image")), Alt(prop(p, "user.firstName").Text()), Class("user-image")),
		H2(Class("user-name"), prop(p, "user.firstName"), " ", prop(p, "user.lastName")),
	)
}, "user.firstName", "user.lastName", "user.image")

// StyledButton is a button with text, a click callback and an inline style.
var StyledButton = compose.Func("Button", func(p props.Bundle) *VNode {
	return Button(
		Attribute("style", prop(p, "style")),
		OnClick(prop(p, "onClick")),
		Class("custom-button"),
		prop(p, "text"),
	)
}, "text")

var buttonStyles = props.Of(
	"backgroundColor", "#ea4c89",
	"padding", "12px 24px",
	"border", "none",
	"borderRadius", "20px",
	"margin", "10px 5px",
	"cursor", "pointer",
	"fontSize", "16px",
	"color", "white",
	"boxShadow", "0 4px 6px rgba(0, 0, 0, 0.1)",
	"transition", "transform 0.3s ease",
	"&:hover", props.Of(
		"transform", "translateY(-2px)",
		"boxShadow", "0 6px 8px rgba(0, 0, 0, 0.15)",
	),
)

var boilerplateMain = compose.Func("Main", func(p props.Bundle) *VNode {
	return Main(Class("dribbble-main"),
		Div(Class("main-wrapper"),
			H2(Class("section-title"), "Prerequisite to get started with React.js:"),
			LogoTechList.With(props.Of("techs", prop(p, "techs"))),
			UserCard.With(props.Of("user", prop(p, "user"))),
			Div(Class("button-container"),
				StyledButton.With(props.Of(
					"text", "Greet People",
					"onClick", prop(p, "greetPeople"),
					"style", buttonStyles,
				)),
				StyledButton.With(props.Of(
					"text", "Show Time",
					"onClick", prop(p, "handleTime"),
					"style", buttonStyles,
				)),
			),
		),
	)
}, "techs", "user")

var boilerplateFooter = compose.Func("Footer", func(p props.Bundle) *VNode {
	return Footer(Class("dribbble-footer"),
		Div(Class("footer-wrapper"),
			P("Copyright © ", yearOf(prop(p, "copyRight")), " | All Rights Reserved"),
		),
	)
}, "copyRight")

// BoilerplateApp is the final chapter 4 page.
var BoilerplateApp = compose.Func("App", func(p props.Bundle) *VNode {
	return Div(Class("app"),
		boilerplateHeader.With(props.Of("data", prop(p, "data"))),
		boilerplateMain.With(p.Without("data").Without("copyRight")),
		boilerplateFooter.With(props.Of("copyRight", prop(p, "copyRight"))),
	)
})

var boilerplateExample = Example{
	Name:    "boilerplate",
	Chapter: 4,
	Title:   "30 Days Of React",
	Summary: "the final app with logos, a user card and alerting buttons",
	App:     BoilerplateApp,
	Props: func(now time.Time) props.Bundle {
		author := props.Of("firstName", "Aytekin", "lastName", "Kaplan")
		return props.Of(
			"data", props.Of(
				"welcome", "Welcome to React",
				"title", "Getting Started with React",
				"subtitle", "JavaScript Library",
				"author", author,
				"date", now,
			),
			"techs", []string{"HTML", "CSS", "JavaScript", "React"},
			"user", author.With("image", props.Resource("images/aytekin.jpg")),
			"greetPeople", alertAction(greeting),
			"handleTime", showTime,
			"copyRight", now,
		)
	},
}
