package console

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/Raymond9734/customer-admin/internal/controller"
	"github.com/Raymond9734/customer-admin/internal/models"
	"github.com/Raymond9734/customer-admin/internal/validation"
)

const dateLayout = "2006-01-02"

func sortLabel(f models.SortField) string {
	switch f {
	case models.SortByFirstName:
		return "First Name"
	case models.SortByLastName:
		return "Last Name"
	case models.SortByEmail:
		return "Email"
	case models.SortByCreatedAt:
		return "Created"
	default:
		return string(f)
	}
}

func (c *Console) printList(s controller.ListState) {
	q := s.Query
	totalPages := 1
	if q.Size > 0 && s.TotalElements > 0 {
		totalPages = int((s.TotalElements + int64(q.Size) - 1) / int64(q.Size))
	}

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Showing %d of %d customers (page %d of %d, sorted by %s %s)\n",
		len(s.Customers), s.TotalElements, q.Page+1, totalPages, sortLabel(q.SortField), q.SortDir)
	if q.Search != "" {
		fmt.Fprintf(c.out, "Search: %q\n", q.Search)
	}
	if !q.Filter.IsEmpty() {
		fmt.Fprintf(c.out, "Filter: city=%q state=%q zipcode=%q\n", q.Filter.City, q.Filter.State, q.Filter.Pincode)
	}
	if s.Status == controller.StatusError && s.Err != nil {
		fmt.Fprintf(c.out, "Error: %s\n", describe(s.Err))
	}
	if len(s.Customers) == 0 {
		fmt.Fprintln(c.out, "No customers found")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIRST NAME\tLAST NAME\tEMAIL\tPHONE\tADDRESSES\tCREATED")
	for _, cu := range s.Customers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			cu.FirstName, cu.LastName, cu.Email, cu.Phone, cu.NumAddresses, formatDate(cu.CreatedAt))
	}
	w.Flush()
}

func (c *Console) printDetail(s controller.DetailState) {
	fmt.Fprintln(c.out)
	switch {
	case s.Status == controller.StatusLoading:
		fmt.Fprintln(c.out, "Loading customer...")
		return
	case s.Status == controller.StatusError:
		fmt.Fprintf(c.out, "Error: %s\n", describe(s.Err))
		return
	case s.Customer == nil:
		return
	}

	cu := s.Customer
	fmt.Fprintf(c.out, "%s %s\n", cu.FirstName, cu.LastName)
	fmt.Fprintf(c.out, "Email: %s\nPhone: %s\nCustomer since: %s\n",
		cu.Email, cu.Phone, formatDate(cu.CreatedAt))
	if s.ActionErr != nil {
		fmt.Fprintf(c.out, "Error: %s\n", describe(s.ActionErr))
	}

	fmt.Fprintf(c.out, "Addresses (%d)\n", cu.AddressCount())
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STREET\tCITY\tSTATE\tZIPCODE\tCOUNTRY")
	for _, a := range cu.Addresses {
		street := a.Street
		if a.Street2 != "" {
			street += ", " + a.Street2
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", street, a.City, a.State, a.Pincode, a.Country)
	}
	w.Flush()

	if !s.CanDeleteAddress {
		fmt.Fprintln(c.out, "This customer has only one address. It cannot be deleted.")
	}
}

func (c *Console) printFieldErrors(groups ...[]string) {
	for _, lines := range groups {
		for _, line := range lines {
			fmt.Fprintf(c.out, "  %s\n", line)
		}
	}
}

func customerErrorLines(errs validation.CustomerErrors) []string {
	var out []string
	for _, f := range validation.CustomerFields {
		if msg := errs.Get(f); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

func addressErrorLines(errs validation.AddressErrors) []string {
	var out []string
	for _, f := range validation.AddressFields {
		if msg := errs.Get(f); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}
