package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMergeLine_SameModelAccumulates(t *testing.T) {
	cart := EmptyCart("alice")
	item, err := NewLineItem("iPhone 13", "Smartphone", 899.99, 1)
	require.NoError(t, err)

	cart.MergeLine(item)
	cart.MergeLine(item)

	require.Len(t, cart.Items, 1)
	require.Equal(t, int32(2), cart.Items[0].Quantity)
	require.InDelta(t, 1799.98, cart.Total, 0.001)
}

func TestMergeLine_DistinctModelsStaySeparate(t *testing.T) {
	cart := EmptyCart("alice")
	phone, err := NewLineItem("iPhone 13", "Smartphone", 899.99, 1)
	require.NoError(t, err)
	laptop, err := NewLineItem("ThinkPad X1", "Laptop", 1499.00, 1)
	require.NoError(t, err)

	cart.MergeLine(phone)
	cart.MergeLine(laptop)

	require.Len(t, cart.Items, 2)
	require.InDelta(t, 2398.99, cart.Total, 0.001)
}

func TestNewLineItem_Validation(t *testing.T) {
	_, err := NewLineItem("", "Smartphone", 1, 1)
	require.ErrorIs(t, err, ErrEmptyModel)

	_, err = NewLineItem("iPhone 13", "Smartphone", 1, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLineItem("iPhone 13", "Smartphone", 1, -3)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRemoveOneUnit(t *testing.T) {
	cart := EmptyCart("alice")
	item, err := NewLineItem("iPhone 13", "Smartphone", 100, 2)
	require.NoError(t, err)
	cart.MergeLine(item)

	require.True(t, cart.RemoveOneUnit("iPhone 13"))
	require.Equal(t, int32(1), cart.Line("iPhone 13").Quantity)
	require.InDelta(t, 100, cart.Total, 0.001)

	require.True(t, cart.RemoveOneUnit("iPhone 13"))
	require.True(t, cart.IsEmpty())
	require.Zero(t, cart.Total)

	require.False(t, cart.RemoveOneUnit("iPhone 13"))
}

func TestClearLines_KeepsCartActive(t *testing.T) {
	cart := EmptyCart("alice")
	item, err := NewLineItem("iPhone 13", "Smartphone", 100, 3)
	require.NoError(t, err)
	cart.MergeLine(item)

	cart.ClearLines()

	require.True(t, cart.IsEmpty())
	require.Zero(t, cart.Total)
	require.False(t, cart.Paid)
}

func TestRecomputeTotal_RoundsToCents(t *testing.T) {
	cart := EmptyCart("alice")
	item, err := NewLineItem("Cable", "Appliance", 0.115, 3)
	require.NoError(t, err)
	cart.MergeLine(item)

	require.InDelta(t, 0.35, cart.Total, 0.0001)
}

func TestMarkPaid_SetsPaymentDate(t *testing.T) {
	cart := EmptyCart("alice")
	item, err := NewLineItem("iPhone 13", "Smartphone", 100, 1)
	require.NoError(t, err)
	cart.MergeLine(item)

	when := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	cart.MarkPaid(when)

	require.True(t, cart.Paid)
	require.NotNil(t, cart.PaymentDate)
	require.Equal(t, when, *cart.PaymentDate)
}

func TestClone_DetachesState(t *testing.T) {
	cart := EmptyCart("alice")
	item, err := NewLineItem("iPhone 13", "Smartphone", 100, 1)
	require.NoError(t, err)
	cart.MergeLine(item)
	cart.MarkPaid(time.Now())

	clone := cart.Clone()
	clone.Items[0].Quantity = 99
	*clone.PaymentDate = time.Time{}

	require.Equal(t, int32(1), cart.Items[0].Quantity)
	require.False(t, cart.PaymentDate.IsZero())
}
