package mapper_test

import (
	"errors"
	"fmt"

	"propmap/maperr"
	"propmap/mapper"
)

type Account struct {
	ID        int
	FirstName string
	Password  string
	Balance   float64
}

type AccountView struct {
	ID       int
	FullName string
	Password string `propmap:"ignore"`
	Balance  float64
	Currency string
}

func ExampleCreate() {
	m := mapper.New()

	err := mapper.Create[Account, AccountView](m).
		Redirect("FirstName", "FullName").
		AssignConstant("Currency", "EUR").
		Err()
	fmt.Println(err)

	var view AccountView
	err = m.Map(Account{ID: 1, FirstName: "John", Password: "secret", Balance: 10.5}, &view)
	fmt.Println(err, view.ID, view.FullName, view.Password == "", view.Balance, view.Currency)

	// Output:
	// <nil>
	// <nil> 1 John true 10.5 EUR
}

func ExampleTo() {
	m := mapper.New()

	view, err := mapper.To[AccountView](m, &Account{ID: 2, Balance: 3})
	fmt.Println(err, view.ID, view.Balance)

	_, err = mapper.To[AccountView](m, nil)
	fmt.Println(errors.Is(err, maperr.ErrNullArgument))

	// Output:
	// <nil> 2 3
	// true
}

func ExampleBuilder_Ignore() {
	m := mapper.New()

	err := mapper.Create[Account, AccountView](m).Ignore("Balanse").Err()
	fmt.Println(err)

	// Output:
	// ignore: [mapper_test.Account->mapper_test.AccountView] Balanse: invalid argument: no property Balanse on mapper_test.AccountView (did you mean Balance?)
}
