package planner

import (
	"fmt"
	"log"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/store"
)

func (p *Planner) AddCategory(in model.CategoryInput) (model.BudgetCategory, error) {
	if err := in.Validate(); err != nil {
		return model.BudgetCategory{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	c := model.BudgetCategory{
		ID:        p.newID(),
		Name:      in.Name,
		Icon:      in.Icon,
		Allocated: in.Allocated,
		Color:     in.Color,
	}
	p.categories = append(p.categories, c)
	p.save(store.KeyBudgetCategories, p.categories)

	out := c
	b.add(Change{Kind: KindCategory, Action: ActionCreate, ID: c.ID, Origin: OriginLocal, Category: &out})
	// Expenses may already point at this id.
	p.aggregate(OriginLocal, &b)
	return p.categories[p.categoryIndex(c.ID)], nil
}

// UpdateCategory changes the editable fields of a category. Spent stays
// derived.
func (p *Planner) UpdateCategory(id string, patch model.CategoryPatch) (model.BudgetCategory, error) {
	if err := patch.Validate(); err != nil {
		return model.BudgetCategory{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.categoryIndex(id)
	if i < 0 {
		return model.BudgetCategory{}, fmt.Errorf("%w: category %q", ErrNotFound, id)
	}
	c := patch.Apply(p.categories[i])
	if c == p.categories[i] {
		return c, nil
	}
	p.categories[i] = c
	p.save(store.KeyBudgetCategories, p.categories)

	out := c
	b.add(Change{Kind: KindCategory, Action: ActionUpdate, ID: id, Origin: OriginLocal, Category: &out})
	return c, nil
}

// DeleteCategory removes a category. Expenses that pointed at it no longer
// count toward any category's spent.
func (p *Planner) DeleteCategory(id string) error {
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.categoryIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: category %q", ErrNotFound, id)
	}
	removed := p.categories[i]
	p.categories = append(p.categories[:i:i], p.categories[i+1:]...)
	p.save(store.KeyBudgetCategories, p.categories)

	b.add(Change{Kind: KindCategory, Action: ActionDelete, ID: id, Origin: OriginLocal, Category: &removed})
	return nil
}

func (p *Planner) Categories() []model.BudgetCategory {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.BudgetCategory{}, p.categories...)
}

func (p *Planner) Category(id string) (model.BudgetCategory, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.categoryIndex(id)
	if i < 0 {
		return model.BudgetCategory{}, fmt.Errorf("%w: category %q", ErrNotFound, id)
	}
	return p.categories[i], nil
}

// resolveCategory falls back to venue for unknown category ids.
func (p *Planner) resolveCategory(id string) string {
	if id != "" && p.categoryIndex(id) >= 0 {
		return id
	}
	if id != "" {
		log.Printf("planner: unknown category %q, using %q", id, model.CategoryVenue)
	}
	return model.CategoryVenue
}

// AddExpense records a user-entered expense. Duplicate titles are handled
// as in AddTask.
func (p *Planner) AddExpense(in model.ExpenseInput) (model.BudgetExpense, error) {
	if err := in.Validate(); err != nil {
		return model.BudgetExpense{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	if err := p.checkExpenseTitle(in.Title).err(in.Title, in.AllowDuplicate); err != nil {
		return model.BudgetExpense{}, err
	}

	now := p.now()
	e := model.BudgetExpense{
		ID:         p.newID(),
		CategoryID: p.resolveCategory(in.CategoryID),
		Title:      in.Title,
		Amount:     in.Amount,
		Vendor:     in.Vendor,
		Date:       now,
		Notes:      in.Notes,
		IsPaid:     in.IsPaid,
		CreatedAt:  now,
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	p.expenses = append(p.expenses, e)
	p.save(store.KeyBudgetExpenses, p.expenses)

	out := e
	b.add(Change{Kind: KindExpense, Action: ActionCreate, ID: e.ID, Origin: OriginLocal, Expense: &out})
	p.aggregate(OriginLocal, &b)
	return e, nil
}

// UpdateExpense edits a user-entered expense. Mirrored expenses return
// ErrDerived; edit their task instead.
func (p *Planner) UpdateExpense(id string, patch model.ExpensePatch) (model.BudgetExpense, error) {
	if err := patch.Validate(); err != nil {
		return model.BudgetExpense{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.expenseIndex(id)
	if i < 0 {
		return model.BudgetExpense{}, fmt.Errorf("%w: expense %q", ErrNotFound, id)
	}
	if model.IsMirrorID(id) {
		return model.BudgetExpense{}, fmt.Errorf("%w: %q", ErrDerived, id)
	}
	e := patch.Apply(p.expenses[i])
	if patch.CategoryID != nil {
		e.CategoryID = p.resolveCategory(e.CategoryID)
	}
	p.expenses[i] = e
	p.save(store.KeyBudgetExpenses, p.expenses)

	out := e
	b.add(Change{Kind: KindExpense, Action: ActionUpdate, ID: id, Origin: OriginLocal, Expense: &out})
	p.aggregate(OriginLocal, &b)
	return e, nil
}

func (p *Planner) DeleteExpense(id string) error {
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.expenseIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: expense %q", ErrNotFound, id)
	}
	if model.IsMirrorID(id) {
		return fmt.Errorf("%w: %q", ErrDerived, id)
	}
	removed := p.expenses[i]
	p.expenses = append(p.expenses[:i:i], p.expenses[i+1:]...)
	p.save(store.KeyBudgetExpenses, p.expenses)

	b.add(Change{Kind: KindExpense, Action: ActionDelete, ID: id, Origin: OriginLocal, Expense: &removed})
	p.aggregate(OriginLocal, &b)
	return nil
}

// Expenses returns every expense, mirrored ones included.
func (p *Planner) Expenses() []model.BudgetExpense {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.BudgetExpense{}, p.expenses...)
}

func (p *Planner) ExpensesByCategory() map[string][]model.BudgetExpense {
	p.mu.Lock()
	defer p.mu.Unlock()
	return derive.ExpensesByCategory(p.categories, p.expenses)
}
