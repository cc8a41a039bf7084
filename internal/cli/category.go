package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/flowtrack/internal/models"
)

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
	Icon string `short:"i" help:"Icon identifier." default:"circle"`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	category := models.Category{
		UUID: uuid.New().String(),
		Name: c.Name,
		Icon: c.Icon,
	}
	if errs := ctx.Validator.ValidateCategory(category); errs.Any() {
		return reportErrors(errs)
	}
	if err := ctx.Store.AddCategory(category); err != nil {
		return err
	}

	fmt.Printf("Added category: %s (ID: %s)\n", category.Name, category.UUID)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	stats, err := ctx.Store.GetCategoryStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No categories found")
		return nil
	}

	fmt.Println("Categories:")
	for _, s := range stats {
		fmt.Printf("  %s (%s): %d habits, %d active, %d paused\n",
			s.Name, s.Icon, s.TotalHabits, s.ActiveHabits, s.InactiveHabits)
		fmt.Printf("      ID: %s\n", s.UUID)
	}
	return nil
}

// CategoryDeleteCmd deletes a category. Its habits survive and become
// uncategorized.
type CategoryDeleteCmd struct {
	ID string `arg:"" help:"Category UUID."`
}

func (c *CategoryDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.DeleteCategory(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted category %s (habits kept, now uncategorized)\n", c.ID)
	return nil
}
