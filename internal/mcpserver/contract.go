package mcpserver

// UsageGuide explains the note lifecycle to LLM consumers of the tools.
const UsageGuide = `# Jotter Notes

Every tool acts on the notes of the single user this server was started for.
Notes owned by anyone else are invisible: they behave exactly like ids that do
not exist.

## Note fields

- id: opaque identifier returned by create_note and list_notes
- title, content: free text; content may contain HTML markup
- category: defaults to "default" when empty
- tags: ordered list, empty and repeated entries are dropped
- isFavorite, isTrashed: independent flags
- createdAt: set once at creation, never changes

## Lifecycle

1. create_note adds an active note.
2. toggle_favorite flips isFavorite, in or out of the trash.
3. trash_note moves a note to the trash, restore_note takes it back out.
   Both keep isFavorite as it was.
4. delete_note removes a note for good from any state.
5. empty_trash removes every trashed note for good.

update_note replaces title, content, category, tags and isFavorite in one go.
Fields left out are reset to their defaults. It never changes isTrashed.

## Views

list_notes takes view = active | favorites | trash. Favorites only lists notes
that are not trashed. An optional query does a case-insensitive substring match
over title, plain-text content and tags.

## Assistant

summarize and extract_action_items send text to the configured model with
markup removed and return its answer verbatim.
`
