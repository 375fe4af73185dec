// Package testsupport holds helpers shared by package tests: temporary
// configurations, SRT fixtures, and a fake translate endpoint.
package testsupport
