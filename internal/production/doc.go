// Package production provides the integrations a deployed host wires into
// widget machines: record persistence and restore, transition publishing,
// and chart visualization.
package production
