package menu

// Item is the flat record a menu is built from. Items are produced by an
// ItemSource and nest through Children.
type Item struct {
	// Title is the display text of the item.
	Title string `json:"title" yaml:"title" toml:"title" mapstructure:"title"`

	// Link is the href of the item. Empty links are treated as the home route.
	Link string `json:"link,omitempty" yaml:"link,omitempty" toml:"link,omitempty" mapstructure:"link"`

	// ID is the element id of the item.
	ID string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty" mapstructure:"id"`

	// Class is a space-separated list of CSS classes.
	Class string `json:"class,omitempty" yaml:"class,omitempty" toml:"class,omitempty" mapstructure:"class"`

	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty" mapstructure:"icon"`
	Target    string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty" mapstructure:"target"`
	Slug      string `json:"slug,omitempty" yaml:"slug,omitempty" toml:"slug,omitempty" mapstructure:"slug"`
	Component string `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty" mapstructure:"component"`

	// Modal names the modal the item opens, if any.
	Modal string `json:"modal,omitempty" yaml:"modal,omitempty" toml:"modal,omitempty" mapstructure:"modal"`

	// Home marks the item as the link to the site home.
	Home bool `json:"home,omitempty" yaml:"home,omitempty" toml:"home,omitempty" mapstructure:"home"`

	// Separator items only keep their title and class; children are ignored.
	Separator bool `json:"separator,omitempty" yaml:"separator,omitempty" toml:"separator,omitempty" mapstructure:"separator"`

	// Params is a free-form key/value bag available to callbacks.
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty" mapstructure:"params"`

	// Children are the sub-items of this item.
	Children []Item `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty" mapstructure:"children"`
}
