package mcp

// apiDocs is the curated reference returned by the fetch_api_docs tool. It
// mirrors the upstream endpoints this adapter consumes.
const apiDocs = `Render API reference

Authentication
  All endpoints expect an "Authorization: Bearer <api key>" header.

Endpoints
  GET  /v1/templates
       List pre-built library templates. Each entry carries id (or
       template_id), name and description.

  GET  /v1/studio/templates
       List user-authored studio templates. Each entry carries a numeric id
       and a display name.

  GET  /v1/templates/modifications?template_id=<id>
       List the modification fields a library template declares.

  GET  /v1/studio/template/modifications?templateId=<id>
       List the modification fields a studio template declares. Fields use
       key/description or id/helpText naming.

  POST /v1/generate/images
       Render a library template. Body: template_id, modifications,
       response {type: base64|url|binary, format}, scale, pdf_options,
       video_options, webhook_url.

  POST /v1/studio/render
       Render a studio template. Body: templateId, modifications,
       response, scale, webhookUrl. templateId must be the numeric id,
       names are resolved before this call.

  GET  /v1/render/status?task_id=<id>
       Poll an asynchronous render task.

Responses
  Generation replies carry success, url or data (base64), task_id and
  status. Asynchronous renders return a task_id to poll.
`
