package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCheck is a mock implementation of Check.
type MockCheck struct {
	mock.Mock
}

// MockCheck_Expecter provides typed expectation helpers.
type MockCheck_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (m *MockCheck) EXPECT() *MockCheck_Expecter {
	return &MockCheck_Expecter{mock: &m.Mock}
}

// Name provides a mock function with no fields.
func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

// Category provides a mock function with no fields.
func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

// Run provides a mock function with the given fields: ctx
func (m *MockCheck) Run(ctx context.Context) *CheckResult {
	ret := m.Called(ctx)
	if v := ret.Get(0); v != nil {
		return v.(*CheckResult)
	}
	return nil
}

// MockCheck_Name_Call wraps a Name expectation.
type MockCheck_Name_Call struct {
	*mock.Call
}

// Name is a helper method to define mock.On call.
func (e *MockCheck_Expecter) Name() *MockCheck_Name_Call {
	return &MockCheck_Name_Call{Call: e.mock.On("Name")}
}

// Return sets the return value.
func (c *MockCheck_Name_Call) Return(name string) *MockCheck_Name_Call {
	c.Call.Return(name)
	return c
}

// Maybe marks the call optional.
func (c *MockCheck_Name_Call) Maybe() *MockCheck_Name_Call {
	c.Call.Maybe()
	return c
}

// MockCheck_Category_Call wraps a Category expectation.
type MockCheck_Category_Call struct {
	*mock.Call
}

// Category is a helper method to define mock.On call.
func (e *MockCheck_Expecter) Category() *MockCheck_Category_Call {
	return &MockCheck_Category_Call{Call: e.mock.On("Category")}
}

// Return sets the return value.
func (c *MockCheck_Category_Call) Return(category string) *MockCheck_Category_Call {
	c.Call.Return(category)
	return c
}

// MockCheck_Run_Call wraps a Run expectation.
type MockCheck_Run_Call struct {
	*mock.Call
}

// Run is a helper method to define mock.On call.
func (e *MockCheck_Expecter) Run(ctx any) *MockCheck_Run_Call {
	return &MockCheck_Run_Call{Call: e.mock.On("Run", ctx)}
}

// Return sets the return value.
func (c *MockCheck_Run_Call) Return(result *CheckResult) *MockCheck_Run_Call {
	c.Call.Return(result)
	return c
}

// NewMockCheck creates a MockCheck whose expectations are asserted when the
// test finishes.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ Check = (*MockCheck)(nil)
