package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/backend/internal/format"
	"github.com/pageza/recipebox/backend/internal/identity"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/query"
	"github.com/pageza/recipebox/backend/internal/service"
)

var errNotLoggedIn = errors.New("you must be logged in, run 'recipectl login' first")

// newRootCmd builds the command tree. open is called once before any
// subcommand runs.
func newRootCmd(open opener) *cobra.Command {
	var (
		opts options
		a    *app
	)

	root := &cobra.Command{
		Use:          "recipectl",
		Short:        "Manage your recipe box from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = open(cmd.Context(), opts)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil && a.close != nil {
				a.close()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.dataPath, "data", defaultDataPath(), "path of the local recipe database")
	root.PersistentFlags().StringVar(&opts.authURL, "auth-url", "", "auth endpoint base URL (defaults to AUTH_BASE_URL)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	get := func() *app { return a }
	root.AddCommand(
		newRegisterCmd(get),
		newLoginCmd(get),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newProfileCmd(get),
		newListCmd(get),
		newShowCmd(get),
		newAddCmd(get),
		newEditCmd(get),
		newDeleteCmd(get),
		newSearchCmd(get),
		newStatsCmd(get),
		newCategoriesCmd(get),
		newSuggestCmd(get),
		newImportCmd(get),
	)
	return root
}

func newRegisterCmd(get func() *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := get().identity.Register(cmd.Context(), name, email, password)
			if !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and signed in as %s <%s>\n", res.User.Name, res.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 6 characters)")
	return cmd
}

func newLoginCmd(get func() *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := get().identity.Login(cmd.Context(), email, password)
			if !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", res.User.Name, res.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newLogoutCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := get().identity.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			user := get().identity.CurrentUser()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Name, user.Email, user.ID)
		},
	}
}

func newProfileCmd(get func() *app) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change the name or email shown for the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := get().identity.UpdateCurrentUser(cmd.Context(), model.User{Name: name, Email: email})
			if errors.Is(err, identity.ErrNotAuthenticated) {
				return errNotLoggedIn
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	return cmd
}

func newListCmd(get func() *app) *cobra.Command {
	var search, category, sortBy string
	var mine bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			recipes, err := a.recipes.GetAllRecipes(cmd.Context(), search, category, sortBy)
			if err != nil {
				return err
			}
			if mine {
				if err := requireLogin(a); err != nil {
					return err
				}
				recipes = ownedBy(recipes, a.identity.UserID())
			}
			printRecipes(cmd.OutOrStdout(), recipes)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match title or description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "exact category")
	cmd.Flags().StringVar(&sortBy, "sort", query.SortNewest, "newest, oldest, title, category or prepTime")
	cmd.Flags().BoolVar(&mine, "mine", false, "only recipes you created")
	return cmd
}

func newShowCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, found, err := get().recipes.GetRecipeByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return errors.New("recipe not found")
			}
			printRecipe(cmd.OutOrStdout(), recipe)
			return nil
		},
	}
}

// recipeFlags binds the editable recipe fields. Ingredients and
// instructions are bulk text, one entry per line.
type recipeFlags struct {
	title, description, category string
	prepTime, cookTime, servings string
	ingredients, instructions    string
}

func (f *recipeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "title")
	cmd.Flags().StringVar(&f.description, "description", "", "short description")
	cmd.Flags().StringVar(&f.category, "category", "", "category")
	cmd.Flags().StringVar(&f.prepTime, "prep", "", "prep time in minutes")
	cmd.Flags().StringVar(&f.cookTime, "cook", "", "cook time in minutes")
	cmd.Flags().StringVar(&f.servings, "servings", "", "number of servings")
	cmd.Flags().StringVar(&f.ingredients, "ingredients", "", "ingredients, one per line")
	cmd.Flags().StringVar(&f.instructions, "instructions", "", "steps, one per line, numbering optional")
}

// apply overlays the flags the user set onto in
func (f *recipeFlags) apply(cmd *cobra.Command, in model.RecipeInput) model.RecipeInput {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("title", &in.Title, f.title)
	set("description", &in.Description, f.description)
	set("category", &in.Category, f.category)
	set("prep", &in.PrepTime, f.prepTime)
	set("cook", &in.CookTime, f.cookTime)
	set("servings", &in.Servings, f.servings)
	if cmd.Flags().Changed("ingredients") {
		in.Ingredients = format.ParseIngredients(f.ingredients)
	}
	if cmd.Flags().Changed("instructions") {
		in.Instructions = format.ParseInstructions(f.instructions)
	}
	return in
}

func newAddCmd(get func() *app) *cobra.Command {
	var f recipeFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := requireLogin(a); err != nil {
				return err
			}
			res := a.recipes.CreateRecipe(cmd.Context(), f.apply(cmd, model.RecipeInput{}), a.identity.UserID())
			if !res.Success {
				return resultError(res.Errors)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", res.Recipe.Title, res.Recipe.ID)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newEditCmd(get func() *app) *cobra.Command {
	var f recipeFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of one of your recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := requireLogin(a); err != nil {
				return err
			}
			current, found, err := a.recipes.GetRecipeByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return errors.New("recipe not found")
			}

			in := f.apply(cmd, inputOf(current))
			res := a.recipes.UpdateRecipe(cmd.Context(), args[0], in, a.identity.UserID())
			if !res.Success {
				return resultError(res.Errors)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", res.Recipe.Title)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newDeleteCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := requireLogin(a); err != nil {
				return err
			}
			res := a.recipes.DeleteRecipe(cmd.Context(), args[0], a.identity.UserID())
			if !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		},
	}
}

func newSearchCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search titles, descriptions, categories and ingredients",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := get().recipes.SearchRecipes(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printRecipes(cmd.OutOrStdout(), recipes)
			return nil
		},
	}
}

func newStatsCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise your recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := requireLogin(a); err != nil {
				return err
			}
			stats, err := a.recipes.GetRecipeStats(cmd.Context(), a.identity.UserID())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recipes:          %d\n", stats.TotalRecipes)
			fmt.Fprintf(out, "Categories used:  %d\n", stats.CategoriesUsed)
			fmt.Fprintf(out, "Average prep:     %s\n", format.FormatTime(fmt.Sprint(stats.AveragePrepTime)))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, c := range stats.CategoryBreakdown {
				fmt.Fprintf(tw, "  %s\t%d\n", c.Category, c.Count)
			}
			return tw.Flush()
		},
	}
}

func newCategoriesCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the known categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := get().recipes.GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newSuggestCmd(get func() *app) *cobra.Command {
	var number int
	cmd := &cobra.Command{
		Use:   "suggest [ingredient...]",
		Short: "Show recipe suggestions, optionally matching ingredients",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var (
				recipes []service.ExternalRecipe
				err     error
			)
			if len(args) > 0 {
				recipes, err = a.suggestions.SearchByIngredients(cmd.Context(), args, number)
			} else {
				recipes, err = a.suggestions.GetRandomRecipes(cmd.Context(), number)
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tREADY IN\tSERVES")
			for _, r := range recipes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.ID, r.Title, format.FormatTime(fmt.Sprint(r.ReadyInMinutes)), r.Servings)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&number, "number", "n", 0, "how many suggestions to show")
	return cmd
}

func newImportCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <suggestion-id>",
		Short: "Copy a suggestion into your recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := requireLogin(a); err != nil {
				return err
			}
			external, err := a.suggestions.FindRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res := a.recipes.CreateRecipe(cmd.Context(), service.ConvertToLocalFormat(*external), a.identity.UserID())
			if !res.Success {
				return resultError(res.Errors)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%s)\n", res.Recipe.Title, res.Recipe.ID)
			return nil
		},
	}
}

func requireLogin(a *app) error {
	if err := a.identity.ValidateSession(); err != nil {
		return errNotLoggedIn
	}
	return nil
}

func resultError(errs []string) error {
	return errors.New(strings.Join(errs, "; "))
}

func inputOf(r *model.Recipe) model.RecipeInput {
	return model.RecipeInput{
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

func ownedBy(recipes []model.Recipe, userID string) []model.Recipe {
	out := []model.Recipe{}
	for _, r := range recipes {
		if r.CreatedBy == userID {
			out = append(out, r)
		}
	}
	return out
}

func printRecipes(w io.Writer, recipes []model.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "No recipes found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tTOTAL\tADDED")
	for _, r := range recipes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			format.Truncate(r.Title, 40),
			r.Category,
			format.FormatTime(fmt.Sprint(format.TotalTime(r.PrepTime, r.CookTime))),
			format.FormatDate(r.CreatedAt))
	}
	_ = tw.Flush()
}

func printRecipe(w io.Writer, r *model.Recipe) {
	fmt.Fprintf(w, "%s\n", r.Title)
	if r.Description != "" {
		fmt.Fprintf(w, "%s\n", r.Description)
	}
	fmt.Fprintf(w, "\nCategory: %s\n", r.Category)
	fmt.Fprintf(w, "Prep: %s  Cook: %s  Serves: %s\n",
		format.FormatTime(r.PrepTime), format.FormatTime(r.CookTime), r.Servings)
	fmt.Fprintf(w, "Added %s\n", format.FormatDate(r.CreatedAt))

	fmt.Fprintln(w, "\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}
	fmt.Fprintln(w, "\nInstructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}
