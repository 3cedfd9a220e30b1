// Package mocks provides mock implementations for testing against the port
// interfaces.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
// The mocks are generated using go:generate directives and provide a fluent
// API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mocks for the SessionStore and PaymentRecorder interfaces from
// internal/ports. SessionStore covers Save, Get, Delete; PaymentRecorder
// covers RecordPayment.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/eduride/eduride-ui/internal/ports SessionStore,PaymentRecorder
