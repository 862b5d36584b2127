/*
Package config loads Engine settings and scope fixtures.

# Overview

Settings are read from a YAML or JSON file and then overridden by
environment variables prefixed with DIALOGEXPR_. Fields absent from both
keep the values from Default.

# Basic Usage

	s, err := config.Load("dialogexpr.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	engine := dialogexpr.NewEngine(dialogexpr.WithSettings(s))

A file looks like:

	locale: fr-FR
	null_substitution: "${path} is undefined"
	metrics: true
	tracing: false
	log_level: debug

Environment overrides use the upper-case field names:

	DIALOGEXPR_LOCALE=de-DE
	DIALOGEXPR_NULL_SUBSTITUTION='missing: ${path}'
	DIALOGEXPR_METRICS=true
	DIALOGEXPR_TRACING=true
	DIALOGEXPR_LOG_LEVEL=warn

# Scope Fixtures

LoadScope reads a YAML or JSON document to use as an evaluation scope:

	scope, err := config.LoadScope("testdata/order.yaml")
	result, err := expr.Evaluate(scope)
*/
package config
