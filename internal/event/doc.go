// Package event defines what the peripherals report to the mediator.
//
// Every peripheral worker translates its wire format into [Event] values
// and hands them to a [Sink]. The mediator is the only consumer; it owns
// the state the events update.
package event
