package sqlinline

const QSelectRenderContext = `--sql 10c50e4a-dd0f-45ee-8558-a2ec4fd511c9
select
  p.id,
  p.company_id,
  coalesce(c.name, ''),
  coalesce(p.title, ''),
  coalesce(p.platform, ''),
  coalesce(p.post_type, ''),
  p.scheduled_at,
  bp.company_id is not null,
  coalesce(bp.primary_color, ''),
  coalesce(bp.secondary_color, ''),
  coalesce(bp.accent_color, ''),
  coalesce(bp.font_family, ''),
  coalesce(bp.logo_url, ''),
  coalesce(bp.language, ''),
  o.post_id is not null,
  coalesce(o.internal_brief, '{}'::jsonb),
  coalesce(o.primary_caption, ''),
  coalesce(o.hashtags, '[]'::jsonb),
  coalesce(o.image_ideas, '[]'::jsonb),
  coalesce(o.version, 0)
from posts p
join companies c on c.id = p.company_id
left join brand_profiles bp on bp.company_id = p.company_id
left join post_ai_outputs o on o.post_id = p.id
where p.id = $1::text
limit 1;
`

const QUpdateImageIdeas = `--sql 3a20190c-6d4c-4a0f-9a96-473c2f30d0eb
update post_ai_outputs
set image_ideas = $2::jsonb,
    version = version + 1,
    updated_at = now()
where post_id = $1::text;
`
