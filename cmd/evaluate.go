package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/martonlederer/ao-tokens/internal/token"
	"github.com/martonlederer/ao-tokens/quantity"
)

var errOperandCount = errors.New("wrong number of operands")

// evaluate runs the named operation and returns its formatted result.
func evaluate(
	operation string,
	operands []string,
	denomination uint,
	details *token.Details,
) (string, error) {
	switch operation {
	case "info":
		if details == nil {
			return "", errors.New("info requires --token")
		}

		return fmt.Sprintf("%s (%s) denomination=%d", details.Name, details.Ticker, details.Decimals), nil
	case "pow", "convert":
		if len(operands) != 2 { //nolint:mnd
			return "", fmt.Errorf("%s takes a quantity and an integer: %w", operation, errOperandCount)
		}

		return evaluateWithInteger(operation, operands[0], operands[1], denomination)
	}

	quantities := make([]*quantity.Quantity, 0, len(operands))
	for _, operand := range operands {
		q, err := parseOperand(operand, denomination)
		if err != nil {
			return "", err
		}
		quantities = append(quantities, q)
	}

	switch operation {
	case "format", "trunc", "check":
		if len(quantities) != 1 {
			return "", fmt.Errorf("%s takes one quantity: %w", operation, errOperandCount)
		}

		return evaluateUnary(operation, quantities[0], details)
	case "add", "sub", "mul", "div", "cmp":
		if len(quantities) != 2 { //nolint:mnd
			return "", fmt.Errorf("%s takes two quantities: %w", operation, errOperandCount)
		}

		return evaluateBinary(operation, quantities[0], quantities[1])
	case "min", "max":
		pick := quantity.Min
		if operation == "max" {
			pick = quantity.Max
		}

		res, ok := pick(quantities...)
		if !ok {
			return "", fmt.Errorf("%s takes at least one quantity: %w", operation, errOperandCount)
		}

		return res.String(), nil
	default:
		return "", fmt.Errorf("unknown operation: %s", operation)
	}
}

func evaluateUnary(operation string, q *quantity.Quantity, details *token.Details) (string, error) {
	switch operation {
	case "trunc":
		return quantity.Trunc(q).String(), nil
	case "check":
		if details == nil {
			return "", errors.New("check requires --token")
		}

		return strconv.FormatBool(quantity.IsQuantityOf(q, details)), nil
	default:
		return q.String(), nil
	}
}

func evaluateBinary(operation string, a, b *quantity.Quantity) (string, error) {
	switch operation {
	case "add":
		return quantity.Add(a, b).String(), nil
	case "sub":
		return quantity.Sub(a, b).String(), nil
	case "mul":
		return quantity.Mul(a, b).String(), nil
	case "cmp":
		return strconv.Itoa(quantity.Cmp(a, b)), nil
	default:
		res, err := quantity.Div(a, b)
		if err != nil {
			return "", err
		}

		return res.String(), nil
	}
}

func evaluateWithInteger(operation string, operand string, rawInt string, denomination uint) (string, error) {
	q, err := parseOperand(operand, denomination)
	if err != nil {
		return "", err
	}

	if operation == "convert" {
		newDenomination, err := strconv.ParseUint(rawInt, 10, 32)
		if err != nil {
			return "", fmt.Errorf("invalid denomination '%s': %w", rawInt, err)
		}

		return quantity.Convert(q, uint(newDenomination)).String(), nil
	}

	exponent, err := strconv.Atoi(rawInt)
	if err != nil {
		return "", fmt.Errorf("invalid exponent '%s': %w", rawInt, err)
	}

	res, err := quantity.Pow(q, exponent)
	if err != nil {
		return "", err
	}

	return res.String(), nil
}

// parseOperand parses "value" at the default denomination or "value@denomination".
func parseOperand(operand string, denomination uint) (*quantity.Quantity, error) {
	value, rawDenomination, hasDenomination := strings.Cut(operand, "@")
	if hasDenomination {
		parsed, err := strconv.ParseUint(rawDenomination, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid denomination in operand '%s': %w", operand, err)
		}
		denomination = uint(parsed)
	}

	q, err := quantity.Parse(value, denomination)
	if err != nil {
		return nil, fmt.Errorf("invalid operand '%s': %w", operand, err)
	}

	return q, nil
}
