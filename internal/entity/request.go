package entity

import (
	"context"
	"encoding/json"

	"github.com/ghaniswara/medi-quest/pkg/validator"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *CreateUserRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Name == "" {
		problems["Name"] = append(problems["Name"], "Name is required")
	}

	if r.Email == "" {
		problems["Email"] = append(problems["Email"], "Email is required")
	} else if !validator.IsEmail(r.Email) {
		problems["Email"] = append(problems["Email"], "Invalid email format")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	if len([]byte(r.Password)) > 72 {
		problems["Password"] = append(problems["Password"], "Password length should not exceed 72 bytes")
	}

	return problems
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Email == "" {
		problems["Email"] = append(problems["Email"], "Email is required")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	return problems
}

type SupplyRequest struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

func (r *SupplyRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Title == "" {
		problems["Title"] = append(problems["Title"], "Title is required")
	}
	if r.Category == "" {
		problems["Category"] = append(problems["Category"], "Category is required")
	}
	if r.Amount < 0 {
		problems["Amount"] = append(problems["Amount"], "Amount must not be negative")
	}

	return problems
}

// DonationRequest is a donation body: two typed fields and any number of donor fields.
type DonationRequest struct {
	SupplyCategory string
	SupplyAmount   *float64
	Details        map[string]interface{}

	typeProblems map[string][]string
}

func (r *DonationRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.typeProblems = make(map[string][]string)
	r.Details = make(map[string]interface{}, len(fields))

	for key, raw := range fields {
		switch key {
		case "supplyCategory":
			if err := json.Unmarshal(raw, &r.SupplyCategory); err != nil {
				r.typeProblems["SupplyCategory"] = append(r.typeProblems["SupplyCategory"], "Supply category must be a string")
			}
		case "supplyAmount":
			var amount float64
			if err := json.Unmarshal(raw, &amount); err != nil {
				r.typeProblems["SupplyAmount"] = append(r.typeProblems["SupplyAmount"], "Supply amount must be a number")
				continue
			}
			r.SupplyAmount = &amount
		case "_id", "createdAt":
			// assigned by the server
		default:
			var v interface{}
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			r.Details[key] = v
		}
	}
	return nil
}

func (r *DonationRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)
	for k, v := range r.typeProblems {
		problems[k] = append(problems[k], v...)
	}

	if r.SupplyCategory == "" && len(problems["SupplyCategory"]) == 0 {
		problems["SupplyCategory"] = append(problems["SupplyCategory"], "Supply category is required")
	}

	if r.SupplyAmount == nil {
		if len(problems["SupplyAmount"]) == 0 {
			problems["SupplyAmount"] = append(problems["SupplyAmount"], "Supply amount is required")
		}
	} else if *r.SupplyAmount < 0 {
		problems["SupplyAmount"] = append(problems["SupplyAmount"], "Supply amount must not be negative")
	}

	return problems
}
