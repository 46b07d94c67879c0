// Package mapper copies property values from one struct to another.
//
// By default every destination property receives the source property of the
// same name. Per type pair the defaults can be changed through a Handle:
//
//	m := mapper.New()
//
//	err := mapper.Create[model.User, view.User](m).
//	    Ignore("Password").
//	    Redirect("FirstName", "FullName").
//	    AssignConstant("Status", "active").
//	    Err()
//
//	var v view.User
//	err = m.Map(user, &v)
//
// A destination field tagged `propmap:"ignore"` is never written, whatever the
// configuration says. Source properties missing on the other side are skipped
// silently; only nil or non-struct arguments fail a Map call.
package mapper
