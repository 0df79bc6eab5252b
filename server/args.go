package server

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// args reads command arguments from a request Struct. Missing and null
// fields read as their zero value.
type args map[string]*structpb.Value

func (a args) present(name string) bool {
	v, ok := a[name]
	if !ok || v == nil {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

func (a args) str(name string) string {
	return a[name].GetStringValue()
}

func (a args) intOr(name string, def int) (int, error) {
	if !a.present(name) {
		return def, nil
	}
	switch k := a[name].GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			break
		}
		return int(n), nil
	case *structpb.Value_StringValue:
		if n, err := strconv.ParseInt(strings.TrimSpace(k.StringValue), 10, 32); err == nil {
			return int(n), nil
		}
	}
	return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
}

func (a args) amount(name string) (*decimal.Decimal, error) {
	if !a.present(name) {
		return nil, nil
	}
	switch k := a[name].GetKind().(type) {
	case *structpb.Value_NumberValue:
		d := decimal.NewFromFloat(k.NumberValue)
		return &d, nil
	case *structpb.Value_StringValue:
		if d, err := decimal.NewFromString(strings.TrimSpace(k.StringValue)); err == nil {
			return &d, nil
		}
	}
	return nil, status.Errorf(codes.InvalidArgument, "%s must be a decimal amount", name)
}
