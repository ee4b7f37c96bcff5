package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/models"
)

// ContentCmd groups marketing content operations.
type ContentCmd struct {
	Create ContentCreateCmd `cmd:"" help:"Create a content item"`
	Show   ContentShowCmd   `cmd:"" help:"Show a content item with its analytics"`
	Update ContentUpdateCmd `cmd:"" help:"Update a content item"`
	Delete ContentDeleteCmd `cmd:"" help:"Delete a content item"`
	List   ContentListCmd   `cmd:"" help:"List content items"`
}

// contentFlags are the writable fields shared by create and update. A spec
// file, when given, provides the base values and flags override it.
type contentFlags struct {
	FromFile  string   `type:"existingfile" help:"YAML or JSON file with the content fields"`
	Title     string   `help:"Content title"`
	Channel   string   `help:"Delivery channel (instagram, facebook, email, ...)"`
	Type      string   `help:"Content type (post, story, reel, ...)"`
	Objective string   `help:"Campaign objective"`
	Audience  string   `help:"Target audience"`
	Status    string   `help:"Workflow status (draft, scheduled, published)"`
	Link      string   `help:"Call-to-action link"`
	Text      string   `help:"Caption text"`
	Tag       []string `help:"Tag, repeatable"`
	Product   string   `help:"Associated product ID"`
	Schedule  string   `help:"Publish time, RFC 3339"`
	Media     []string `type:"existingfile" help:"Media file to upload, repeatable"`

	Generate     bool   `help:"Ask the server to generate caption and media"`
	Instructions string `help:"Generation instructions"`
	Style        string `help:"Generation visual style"`
	Dimensions   string `help:"Generated image dimensions"`
	KeyElements  string `name:"key-elements" help:"Elements the generated media must include"`
	ImageCount   int    `name:"image-count" help:"Number of images to generate"`
}

// contentSpec mirrors the fields accepted in a --from-file document.
type contentSpec struct {
	Title     string   `yaml:"title" json:"title"`
	Channel   string   `yaml:"channel" json:"channel"`
	Type      string   `yaml:"type" json:"type"`
	Objective string   `yaml:"objective" json:"objective"`
	Audience  string   `yaml:"audience" json:"audience"`
	Status    string   `yaml:"status" json:"status"`
	Link      string   `yaml:"link" json:"link"`
	Text      string   `yaml:"text" json:"text"`
	Tags      []string `yaml:"tags" json:"tags"`
	Product   string   `yaml:"product" json:"product"`
	Schedule  string   `yaml:"schedule" json:"schedule"`
	Media     []string `yaml:"media" json:"media"`
}

func (f contentFlags) params() (api.ContentParams, error) {
	return f.apply(api.ContentParams{})
}

// apply overlays the spec file, then any flags that were set, onto base.
// Base is zero for create; update passes the stored record so unset fields
// keep their server values instead of being erased.
func (f contentFlags) apply(params api.ContentParams) (api.ContentParams, error) {
	if f.FromFile != "" {
		spec, err := loadContentSpec(f.FromFile)
		if err != nil {
			return params, err
		}
		if spec.Title != "" {
			params.Title = spec.Title
		}
		if spec.Channel != "" {
			params.Channel = spec.Channel
		}
		if spec.Type != "" {
			params.Type = spec.Type
		}
		if spec.Objective != "" {
			params.Objective = spec.Objective
		}
		if spec.Audience != "" {
			params.Audience = spec.Audience
		}
		if spec.Status != "" {
			params.Status = spec.Status
		}
		if spec.Link != "" {
			params.Link = spec.Link
		}
		if spec.Text != "" {
			params.Text = spec.Text
		}
		if len(spec.Tags) > 0 {
			params.Tags = spec.Tags
		}
		if spec.Product != "" {
			params.ProductID = spec.Product
		}
		if len(spec.Media) > 0 {
			params.Media = spec.Media
		}
		if spec.Schedule != "" {
			at, err := time.Parse(time.RFC3339, spec.Schedule)
			if err != nil {
				return params, fmt.Errorf("parse schedule in %s: %w", f.FromFile, err)
			}
			params.ScheduledAt = at
		}
	}

	if f.Title != "" {
		params.Title = f.Title
	}
	if f.Channel != "" {
		params.Channel = f.Channel
	}
	if f.Type != "" {
		params.Type = f.Type
	}
	if f.Objective != "" {
		params.Objective = f.Objective
	}
	if f.Audience != "" {
		params.Audience = f.Audience
	}
	if f.Status != "" {
		params.Status = f.Status
	}
	if f.Link != "" {
		params.Link = f.Link
	}
	if f.Text != "" {
		params.Text = f.Text
	}
	if len(f.Tag) > 0 {
		params.Tags = f.Tag
	}
	if f.Product != "" {
		params.ProductID = f.Product
	}
	if len(f.Media) > 0 {
		params.Media = f.Media
	}
	if f.Schedule != "" {
		at, err := time.Parse(time.RFC3339, f.Schedule)
		if err != nil {
			return params, fmt.Errorf("parse --schedule: %w", err)
		}
		params.ScheduledAt = at
	}

	if f.Generate {
		params.Generate = &api.GenerateParams{
			Mode:         "generate",
			Instructions: f.Instructions,
			Style:        f.Style,
			Dimensions:   f.Dimensions,
			KeyElements:  f.KeyElements,
			ImageCount:   f.ImageCount,
		}
	}

	return params, nil
}

// contentBase seeds update params from the stored record. Media is left
// empty: it carries local upload paths, not the stored filenames, and the
// server keeps existing media when none are attached.
func contentBase(c *models.Content) api.ContentParams {
	params := api.ContentParams{
		Title:     c.Title,
		Channel:   c.Channel,
		Type:      c.Type,
		Objective: c.Objective,
		Audience:  c.Audience,
		Status:    c.Status,
		Link:      c.Link,
		Text:      c.Text,
		Tags:      []string(c.Tags),
		ProductID: c.ProductID,
	}
	if c.ScheduledAt != nil {
		params.ScheduledAt = c.ScheduledAt.Time
	}
	return params
}

func loadContentSpec(path string) (*contentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}

	var spec contentSpec
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &spec, nil
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &spec, nil
}

type ContentCreateCmd struct {
	contentFlags
}

func (c *ContentCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	params, err := c.params()
	if err != nil {
		return err
	}

	content, err := app.store.CreateContent(ctx, params)
	if err != nil {
		return err
	}

	fmt.Printf("Content %s created with ID %s\n", content.Title, content.ID)
	return nil
}

type ContentShowCmd struct {
	ID string `arg:"" help:"Content ID"`
}

func (c *ContentShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	content, err := app.store.GetContent(ctx, c.ID)
	if err != nil {
		return err
	}

	if app.output == "json" {
		return printJSON(content)
	}

	printContent(content)
	return nil
}

func printContent(c *models.Content) {
	field("ID", c.ID)
	field("Title", c.Title)
	field("Channel", c.Channel)
	field("Type", c.Type)
	field("Status", c.Status)
	field("Objective", c.Objective)
	field("Audience", c.Audience)
	field("Link", c.Link)
	field("Text", c.Text)
	field("Tags", strings.Join(c.Tags, ", "))
	field("Product", c.ProductID)
	if c.ScheduledAt != nil {
		field("Scheduled", c.ScheduledAt.Format(time.RFC3339))
	}
	if c.PublishedAt != nil {
		field("Published", c.PublishedAt.Format(time.RFC3339))
	}
	for _, m := range c.Media {
		field("Media", m)
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Analytics"))
	field("Impressions", strconv.Itoa(c.Impressions))
	field("Likes", strconv.Itoa(c.Likes))
	field("Shares", strconv.Itoa(c.Shares))
	field("Clicks", strconv.Itoa(c.Clicks))
	field("Comments", strconv.Itoa(c.Comments))
	field("Engagement", strconv.Itoa(c.Engagement()))

	if c.Score != nil || c.Analysis != "" || len(c.Recommendations) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Evaluation"))
		if c.Score != nil {
			field("Score", strconv.Itoa(*c.Score))
		}
		field("Analysis", c.Analysis)
		for _, r := range c.Recommendations {
			field("Recommendation", r)
		}
	}
}

type ContentUpdateCmd struct {
	ID string `arg:"" help:"Content ID"`
	contentFlags
}

func (c *ContentUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	// The server commits every key present in the payload, so start from the
	// stored record and overlay only what the file and flags supplied.
	current, err := app.store.GetContent(ctx, c.ID)
	if err != nil {
		return err
	}

	params, err := c.apply(contentBase(current))
	if err != nil {
		return err
	}

	content, err := app.store.UpdateContent(ctx, c.ID, params)
	if err != nil {
		return err
	}

	fmt.Printf("Content %s updated\n", content.Title)
	return nil
}

type ContentDeleteCmd struct {
	ID string `arg:"" help:"Content ID"`
}

func (c *ContentDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	if err := app.store.DeleteContent(ctx, c.ID); err != nil {
		return err
	}

	fmt.Printf("Content %s deleted\n", c.ID)
	return nil
}

type ContentListCmd struct {
	Channel string `help:"Only show content for this channel"`
	Status  string `help:"Only show content with this status"`
}

func (c *ContentListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	contents, err := app.store.ListContents(ctx)
	if err != nil {
		return err
	}

	filtered := contents[:0:0]
	for _, item := range contents {
		if c.Channel != "" && item.Channel != c.Channel {
			continue
		}
		if c.Status != "" && item.Status != c.Status {
			continue
		}
		filtered = append(filtered, item)
	}

	if app.output == "json" {
		return printJSON(filtered)
	}

	if len(filtered) == 0 {
		fmt.Println("No content found.")
		return nil
	}

	rows := make([][]string, 0, len(filtered))
	for _, item := range filtered {
		rows = append(rows, []string{
			item.ID,
			truncate(item.Title, 30),
			item.Channel,
			item.Type,
			item.Status,
			strconv.Itoa(item.Engagement()),
		})
	}
	table([]string{"ID", "TITLE", "CHANNEL", "TYPE", "STATUS", "ENGAGEMENT"}, rows)
	return nil
}
